package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/entities"
	"github.com/KirkDiggler/dice-roller/internal/errors"
)

func TestNewDie(t *testing.T) {
	testCases := []struct {
		name    string
		sides   int
		acronym string
		want    entities.Die
		wantErr bool
	}{
		{name: "valid", sides: 3, acronym: "d3", want: entities.Die{Sides: 3, Acronym: "d3"}},
		{name: "one side", sides: 1, acronym: "d1", want: entities.Die{Sides: 1, Acronym: "d1"}},
		{name: "trims acronym", sides: 100, acronym: "  d100 ", want: entities.Die{Sides: 100, Acronym: "d100"}},
		{name: "zero sides", sides: 0, acronym: "x", wantErr: true},
		{name: "negative sides", sides: -2, acronym: "x", wantErr: true},
		{name: "empty acronym", sides: 5, acronym: "", wantErr: true},
		{name: "blank acronym", sides: 5, acronym: "   ", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entities.NewDie(tc.sides, tc.acronym)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStandard(t *testing.T) {
	std := entities.Standard()
	require.Len(t, std, 6)

	acronyms := make([]string, 0, len(std))
	for _, d := range std {
		acronyms = append(acronyms, d.Acronym)
	}
	assert.Equal(t, []string{"d4", "d6", "d8", "d10", "d12", "d20"}, acronyms)

	// callers get their own copy
	std[0].Sides = 99
	assert.Equal(t, 4, entities.Standard()[0].Sides)
}

func TestDieEntity(t *testing.T) {
	d := entities.Die{Sides: 20, Acronym: "d20"}

	assert.Equal(t, "d20", d.GetID())
	assert.Equal(t, entities.EntityTypeDie, d.GetType())
	assert.Equal(t, "d20", d.String())
	assert.Equal(t, d, entities.Die{Sides: 20, Acronym: "d20"})
}

func TestSameAcronym(t *testing.T) {
	assert.True(t, entities.SameAcronym("d6", "D6"))
	assert.True(t, entities.SameAcronym(" d6", "d6 "))
	assert.False(t, entities.SameAcronym("d6", "d60"))
}
