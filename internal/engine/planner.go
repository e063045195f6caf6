// Package engine implements the placement core: slot-model construction and
// the greedy container-to-slot assignment over an aircraft's slot pool.
package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/skylane/loadplan/internal/catalog"
	"github.com/skylane/loadplan/internal/model"
)

// Planner runs the placement algorithm. It owns the slot pool exclusively
// for the duration of a run; candidate runs are read-only views over it.
type Planner struct {
	Settings model.PlanSettings
	Types    catalog.ContainerTypes
}

func New(settings model.PlanSettings, types catalog.ContainerTypes) *Planner {
	return &Planner{Settings: settings, Types: types}
}

// run is one candidate placement: width consecutive free slots on a single
// deck. Runs never span the main/lower boundary; the decks keep disjoint
// index spaces.
type run struct {
	slots []*model.Slot
}

func (r run) start() *model.Slot { return r.slots[0] }

// Plan places the containers, strictly in input order, onto the aircraft's
// slots and returns the complete result. Containers that find no fit are
// recorded as unassigned and processing continues; Plan has no failure mode.
func (p *Planner) Plan(ac model.Aircraft, containers []model.Container) model.PlanResult {
	result := model.PlanResult{
		ID:       uuid.New().String()[:8],
		Aircraft: ac,
	}

	result.MainSlots = BuildSlots("main", ac.MainDeck, p.Settings.MainForeArm, p.Settings.MainAftArm)
	result.LowerSlots = BuildSlots("lower", ac.LowerDeck, p.Settings.LowerForeArm, p.Settings.LowerAftArm)

	// Pooled scan order: main deck front-to-back, then lower deck.
	pool := make([]*model.Slot, 0, len(result.MainSlots)+len(result.LowerSlots))
	decks := [][]*model.Slot{}
	mainRefs := make([]*model.Slot, len(result.MainSlots))
	for i := range result.MainSlots {
		mainRefs[i] = &result.MainSlots[i]
	}
	lowerRefs := make([]*model.Slot, len(result.LowerSlots))
	for i := range result.LowerSlots {
		lowerRefs[i] = &result.LowerSlots[i]
	}
	if len(mainRefs) > 0 {
		decks = append(decks, mainRefs)
	}
	if len(lowerRefs) > 0 {
		decks = append(decks, lowerRefs)
	}
	pool = append(pool, mainRefs...)
	pool = append(pool, lowerRefs...)

	avgArm := meanArm(pool)

	for _, c := range containers {
		width := p.Types.Width(c.ID)
		chosen := p.selectRun(decks, c, width, avgArm, result.TotalWeight, result.TotalMoment)

		if chosen == nil {
			result.Assignments = append(result.Assignments, model.Assignment{
				Container: c,
				Placed:    false,
			})
			continue
		}

		share := c.Weight / float64(width)
		for _, s := range chosen.slots {
			s.Occupied = true
			s.OccupantID = c.ID
			s.AllocatedWeight = share
			result.TotalMoment += share * s.Arm
		}
		result.TotalWeight += c.Weight

		start := chosen.start()
		result.Assignments = append(result.Assignments, model.Assignment{
			Container:  c,
			Placed:     true,
			Deck:       start.Deck,
			StartIndex: start.Index,
			Width:      width,
		})
	}

	return result
}

// selectRun picks the run for one container under the configured strategy,
// or nil when no valid run exists.
func (p *Planner) selectRun(decks [][]*model.Slot, c model.Container, width int, avgArm, curWeight, curMoment float64) *run {
	var best *run
	bestScore := math.Inf(1)

	for _, deck := range decks {
		for i := 0; i+width <= len(deck); i++ {
			candidate := run{slots: deck[i : i+width]}
			if !p.admissible(candidate, c) {
				continue
			}

			if p.Settings.Strategy != model.StrategyBalance {
				// First-fit: earliest valid run in pooled order wins.
				r := candidate
				return &r
			}

			score := cgDeviation(candidate, c, width, avgArm, curWeight, curMoment)
			if score < bestScore {
				bestScore = score
				r := candidate
				best = &r
			}
		}
	}
	return best
}

// admissible reports whether every slot of the run is free, on a permitted
// deck, and zone-compatible with the container.
func (p *Planner) admissible(r run, c model.Container) bool {
	for _, s := range r.slots {
		if s.Occupied {
			return false
		}
		if c.Restriction == model.DeckMain && s.Deck != "main" {
			return false
		}
		if c.Restriction == model.DeckLower && s.Deck != "lower" {
			return false
		}
		if !c.AllowSpecial && s.Zone != model.ZoneNormal {
			return false
		}
	}
	return true
}

// cgDeviation scores a candidate run for the balance strategy: the absolute
// deviation of the resulting overall CG from the pool's mean arm, with the
// container's weight distributed evenly over the run.
func cgDeviation(r run, c model.Container, width int, avgArm, curWeight, curMoment float64) float64 {
	share := c.Weight / float64(width)
	moment := curMoment
	weight := curWeight
	for _, s := range r.slots {
		moment += share * s.Arm
		weight += share
	}
	if weight == 0 {
		return math.Abs(0 - avgArm)
	}
	return math.Abs(moment/weight - avgArm)
}

func meanArm(pool []*model.Slot) float64 {
	if len(pool) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range pool {
		sum += s.Arm
	}
	return sum / float64(len(pool))
}
