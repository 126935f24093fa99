package client

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/pkg/rng"
)

func TestParseQuantities(t *testing.T) {
	quantities, err := parseQuantities([]string{"d6=2", "d20=1", " d6 = 1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"d6": 3, "d20": 1}, quantities)
}

func TestParseQuantities_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		arg  string
	}{
		{name: "missing separator", arg: "d6"},
		{name: "missing acronym", arg: "=2"},
		{name: "non numeric count", arg: "d6=two"},
		{name: "negative count", arg: "d6=-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseQuantities([]string{tc.arg})
			assert.Error(t, err)
		})
	}
}

func TestShuffle_PlaysEveryFrame(t *testing.T) {
	s := &Shuffle{Roller: rng.NewSeeded(3), Interval: time.Millisecond, Duration: 10 * time.Millisecond}
	require.Equal(t, 10, s.Frames())

	var out bytes.Buffer
	require.NoError(t, s.Play(context.Background(), &out, 6))

	assert.Equal(t, 10, strings.Count(out.String(), "\r"))
}

func TestShuffle_DefaultTiming(t *testing.T) {
	s := &Shuffle{Interval: 50 * time.Millisecond, Duration: 500 * time.Millisecond}
	assert.Equal(t, 10, s.Frames())
}

func TestShuffle_CancelDropsRemainingFrames(t *testing.T) {
	s := &Shuffle{Roller: rng.NewSeeded(3), Interval: time.Hour, Duration: 10 * time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Play(ctx, &out, 6)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, strings.Count(out.String(), "\r"))
}

func TestShuffle_NoFrames(t *testing.T) {
	s := &Shuffle{Roller: rng.NewSeeded(3)}

	var out bytes.Buffer
	require.NoError(t, s.Play(context.Background(), &out, 6))
	assert.Empty(t, out.String())
}
