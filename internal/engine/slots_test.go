package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylane/loadplan/internal/model"
)

func TestGenerateArms_Empty(t *testing.T) {
	assert.Empty(t, GenerateArms(0, 10, 40))
	assert.Empty(t, GenerateArms(-3, 10, 40))
}

func TestGenerateArms_SingleSlotMidpoint(t *testing.T) {
	arms := GenerateArms(1, 10, 40)
	require.Len(t, arms, 1)
	assert.InDelta(t, 25.0, arms[0], 1e-9)
}

func TestGenerateArms_LinearInterpolation(t *testing.T) {
	arms := GenerateArms(4, 10, 40)
	require.Len(t, arms, 4)
	assert.InDelta(t, 10.0, arms[0], 1e-9)
	assert.InDelta(t, 20.0, arms[1], 1e-9)
	assert.InDelta(t, 30.0, arms[2], 1e-9)
	assert.InDelta(t, 40.0, arms[3], 1e-9)
}

func TestGenerateArms_Idempotent(t *testing.T) {
	a := GenerateArms(7, 18, 36)
	b := GenerateArms(7, 18, 36)
	assert.Equal(t, a, b)
}

func TestBuildSlots_ZoneClassification(t *testing.T) {
	g := model.DeckGeometry{Slots: 5, NoseSlots: 2, TailSlots: 1}
	slots := BuildSlots("main", g, 10, 50)

	require.Len(t, slots, 5)
	assert.Equal(t, model.ZoneNose, slots[0].Zone)
	assert.Equal(t, model.ZoneNose, slots[1].Zone)
	assert.Equal(t, model.ZoneNormal, slots[2].Zone)
	assert.Equal(t, model.ZoneNormal, slots[3].Zone)
	assert.Equal(t, model.ZoneTail, slots[4].Zone)

	for i, s := range slots {
		assert.Equal(t, "main", s.Deck)
		assert.Equal(t, i, s.Index)
		assert.False(t, s.Occupied)
	}
}

func TestBuildSlots_NoseWinsOnOverlap(t *testing.T) {
	// Nose and tail ranges overlap on a 2-slot deck; nose takes precedence.
	g := model.DeckGeometry{Slots: 2, NoseSlots: 2, TailSlots: 2}
	slots := BuildSlots("main", g, 10, 40)

	require.Len(t, slots, 2)
	assert.Equal(t, model.ZoneNose, slots[0].Zone)
	assert.Equal(t, model.ZoneNose, slots[1].Zone)
}

func TestBuildSlots_ExplicitArms(t *testing.T) {
	g := model.DeckGeometry{Slots: 3, SlotArms: []float64{5, 6, 7}}
	slots := BuildSlots("lower", g, 12, 28)

	require.Len(t, slots, 3)
	assert.Equal(t, 5.0, slots[0].Arm)
	assert.Equal(t, 6.0, slots[1].Arm)
	assert.Equal(t, 7.0, slots[2].Arm)
}

func TestBuildSlots_SynthesizesArmsOnMismatch(t *testing.T) {
	// Two arms for three slots: the explicit list is discarded.
	g := model.DeckGeometry{Slots: 3, SlotArms: []float64{5, 6}}
	slots := BuildSlots("lower", g, 10, 30)

	require.Len(t, slots, 3)
	assert.InDelta(t, 10.0, slots[0].Arm, 1e-9)
	assert.InDelta(t, 20.0, slots[1].Arm, 1e-9)
	assert.InDelta(t, 30.0, slots[2].Arm, 1e-9)
}

func TestBuildSlots_EmptyDeck(t *testing.T) {
	slots := BuildSlots("main", model.DeckGeometry{}, 10, 40)
	assert.Empty(t, slots)
}

func TestBuildSlots_NegativeSlotCount(t *testing.T) {
	// A corrupt catalog record or bad interactive entry can carry a negative
	// slot count; the deck is treated as nonexistent, never a crash.
	slots := BuildSlots("main", model.DeckGeometry{Slots: -1, NoseSlots: 1}, 10, 40)
	assert.Empty(t, slots)
}
