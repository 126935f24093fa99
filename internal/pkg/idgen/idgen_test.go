package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("roll")

	a := gen.Generate()
	b := gen.Generate()

	assert.NotEqual(t, a, b)
	require.True(t, strings.HasPrefix(a, "roll_"))
	_, err := uuid.Parse(strings.TrimPrefix(a, "roll_"))
	assert.NoError(t, err)

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("roll")
	assert.Equal(t, "roll_1", gen.Generate())
	assert.Equal(t, "roll_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}
