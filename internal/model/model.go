package model

import (
	"fmt"
	"strings"
)

// Zone classifies a slot position on a deck. Nose and tail slots carry
// handling restrictions that some containers are not cleared for.
type Zone int

const (
	ZoneNormal Zone = iota
	ZoneNose
	ZoneTail
)

func (z Zone) String() string {
	switch z {
	case ZoneNose:
		return "Nose"
	case ZoneTail:
		return "Tail"
	default:
		return "Normal"
	}
}

// DeckRestriction limits which deck a container may be placed on.
type DeckRestriction int

const (
	DeckAny DeckRestriction = iota
	DeckMain
	DeckLower
)

func (d DeckRestriction) String() string {
	switch d {
	case DeckMain:
		return "MAIN"
	case DeckLower:
		return "LOWER"
	default:
		return "ANY"
	}
}

// ParseDeckRestriction maps an input token to a restriction. MAIN and LOWER
// are recognized case-insensitively; anything else means no restriction.
func ParseDeckRestriction(s string) DeckRestriction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MAIN":
		return DeckMain
	case "LOWER":
		return DeckLower
	default:
		return DeckAny
	}
}

// DeckGeometry is the static template for one deck: slot count, rendering
// row width, the number of leading slots reserved as nose and trailing
// slots reserved as tail, and an optional explicit arm sequence. When
// SlotArms does not match Slots the engine synthesizes arms instead.
type DeckGeometry struct {
	Slots     int       `json:"slots"`
	RowLength int       `json:"rowLength"`
	NoseSlots int       `json:"noseSlots"`
	TailSlots int       `json:"tailSlots"`
	SlotArms  []float64 `json:"slotArms,omitempty"`
}

// Aircraft describes one aircraft type from the catalog. MTW is carried
// through to reports but not enforced by the planner.
type Aircraft struct {
	Model     string       `json:"model"`
	MainDeck  DeckGeometry `json:"mainDeck"`
	LowerDeck DeckGeometry `json:"lowerDeck"`
	MTW       int          `json:"mtw"`
}

// Container is one unit to place. The slot width it needs is not stored
// here; it is resolved against the container-type catalog at planning time.
type Container struct {
	ID           string          `json:"id"`
	Weight       float64         `json:"weight"` // kg
	Restriction  DeckRestriction `json:"restriction"`
	AllowSpecial bool            `json:"allow_special"` // cleared for nose/tail slots
}

// Slot is one physical position on a deck. Occupancy is mutated in place by
// the planner; a slot never reverts to empty within a run.
type Slot struct {
	Deck            string  `json:"deck"`
	Index           int     `json:"index"` // zero-based within the deck
	Arm             float64 `json:"arm"`
	Zone            Zone    `json:"zone"`
	Occupied        bool    `json:"occupied"`
	OccupantID      string  `json:"occupant_id,omitempty"`
	AllocatedWeight float64 `json:"allocated_weight,omitempty"` // this slot's share
}

// Strategy selects the placement policy. Exactly one strategy applies to a
// whole run; the two are not interchangeable and never mixed.
type Strategy string

const (
	StrategyFirstFit Strategy = "firstfit" // earliest valid run wins
	StrategyBalance  Strategy = "balance"  // run minimizing CG deviation wins
)

// PlanSettings holds planner configuration. The fore/aft arm pairs are the
// defaults used when a deck geometry carries no usable explicit arms.
type PlanSettings struct {
	Strategy Strategy `json:"strategy"`

	MainForeArm  float64 `json:"main_fore_arm"`
	MainAftArm   float64 `json:"main_aft_arm"`
	LowerForeArm float64 `json:"lower_fore_arm"`
	LowerAftArm  float64 `json:"lower_aft_arm"`
}

func DefaultSettings() PlanSettings {
	return PlanSettings{
		Strategy:     StrategyFirstFit,
		MainForeArm:  18.0,
		MainAftArm:   36.0,
		LowerForeArm: 12.0,
		LowerAftArm:  28.0,
	}
}

// Assignment is the per-container outcome of a run: either a placed deck +
// starting slot index, or unassigned. Unassigned is a normal result, not an
// error.
type Assignment struct {
	Container  Container `json:"container"`
	Placed     bool      `json:"placed"`
	Deck       string    `json:"deck,omitempty"`
	StartIndex int       `json:"start_index,omitempty"` // zero-based
	Width      int       `json:"width,omitempty"`       // slots occupied
}

// SlotLabel returns the human-readable slot reference ("main[3]", 1-based)
// or "UNASSIGNED".
func (a Assignment) SlotLabel() string {
	if !a.Placed {
		return "UNASSIGNED"
	}
	return fmt.Sprintf("%s[%d]", a.Deck, a.StartIndex+1)
}

// PlanResult holds the full solution: final slot state per deck, the ordered
// per-container assignments, and the accumulated load state.
type PlanResult struct {
	ID          string       `json:"id"`
	Aircraft    Aircraft     `json:"aircraft"`
	MainSlots   []Slot       `json:"main_slots"`
	LowerSlots  []Slot       `json:"lower_slots"`
	Assignments []Assignment `json:"assignments"`

	TotalWeight float64 `json:"total_weight"`
	TotalMoment float64 `json:"total_moment"`
}

// CG returns the overall center of gravity (moment over weight), or 0 for an
// empty load.
func (r PlanResult) CG() float64 {
	if r.TotalWeight == 0 {
		return 0
	}
	return r.TotalMoment / r.TotalWeight
}

// PlacedCount returns how many containers were assigned a slot.
func (r PlanResult) PlacedCount() int {
	n := 0
	for _, a := range r.Assignments {
		if a.Placed {
			n++
		}
	}
	return n
}

// Unassigned returns the containers that found no fit, in input order.
func (r PlanResult) Unassigned() []Container {
	var out []Container
	for _, a := range r.Assignments {
		if !a.Placed {
			out = append(out, a.Container)
		}
	}
	return out
}

// OverMTW reports whether the accumulated weight exceeds the aircraft's
// maximum takeoff weight. Informational only; the planner does not enforce it.
func (r PlanResult) OverMTW() bool {
	return r.Aircraft.MTW > 0 && r.TotalWeight > float64(r.Aircraft.MTW)
}
