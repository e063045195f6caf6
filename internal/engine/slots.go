package engine

import "github.com/skylane/loadplan/internal/model"

// GenerateArms synthesizes a front-to-back arm sequence by linear
// interpolation between a fore and aft arm. n <= 0 yields an empty sequence
// and n == 1 the midpoint. Pure function: identical inputs always produce
// identical sequences.
func GenerateArms(n int, foreArm, aftArm float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{(foreArm + aftArm) / 2.0}
	}
	arms := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		arms[i] = foreArm*(1-t) + aftArm*t
	}
	return arms
}

// BuildSlots expands a deck geometry into its concrete slot sequence,
// front-to-back. A slot count of zero or less means the deck does not exist
// and yields an empty sequence. Slot i is nose when i < NoseSlots; otherwise
// tail when i >= Slots-TailSlots. Nose wins if the two ranges overlap on a
// very small deck. When the geometry's explicit arm list does not match the
// slot count, arms are synthesized from the fore/aft pair instead.
func BuildSlots(deckName string, g model.DeckGeometry, foreArm, aftArm float64) []model.Slot {
	if g.Slots <= 0 {
		return nil
	}

	arms := g.SlotArms
	if len(arms) != g.Slots {
		arms = GenerateArms(g.Slots, foreArm, aftArm)
	}

	slots := make([]model.Slot, g.Slots)
	for i := 0; i < g.Slots; i++ {
		s := model.Slot{
			Deck:  deckName,
			Index: i,
			Arm:   arms[i],
			Zone:  model.ZoneNormal,
		}
		if i < g.NoseSlots {
			s.Zone = model.ZoneNose
		} else if i >= g.Slots-g.TailSlots {
			s.Zone = model.ZoneTail
		}
		slots[i] = s
	}
	return slots
}
