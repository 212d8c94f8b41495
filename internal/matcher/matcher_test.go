package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "dog", "dog", 100},
		{"case and spaces", "  DOG ", "dog", 100},
		{"both empty", "", "", 100},
		{"one empty", "", "dog", 0},
		{"nothing shared", "four", "4", 0},
		{"one substitution", "hello", "hallo", 80},
		{"missing letter", "color", "colour", 100 * (1 - 1.0/11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"photosynthesis", "photo synthesis"},
		{"Paris", "paris "},
		{"mitochondria", "mitochondrion"},
		{"ß", "ss"},
		{"café", "café"},
	}
	for _, p := range pairs {
		assert.Equal(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), "%q vs %q", p[0], p[1])
		assert.Equal(t, Match(p[0], p[1], 80), Match(p[1], p[0], 80), "%q vs %q", p[0], p[1])
	}
}

func TestRatio_ComposedAndDecomposedAreEqual(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("café", "café"))
}

func TestMatch_Threshold(t *testing.T) {
	assert.True(t, Match("hallo", "hello", 80))
	assert.False(t, Match("hallo", "hello", 81))
	assert.True(t, Match("4", "4", 80))
	assert.False(t, Match("four", "4", 80))
	assert.True(t, Match("anything", "else", 0))
}

func TestNew_ClampsThreshold(t *testing.T) {
	assert.Equal(t, 0, New(-5).Threshold)
	assert.Equal(t, 100, New(250).Threshold)
	assert.Equal(t, 80, New(80).Threshold)
}

func TestMatcher_MatchAll(t *testing.T) {
	m := New(80)
	got := m.MatchAll("dog", []string{"cat", "dog", "dogs"})
	assert.Equal(t, []string{"dog", "dogs"}, got)
	assert.Empty(t, m.MatchAll("bird", []string{"cat", "dog"}))
}

func TestMatcher_Best(t *testing.T) {
	m := New(80)
	best, score, ok := m.Best("colr", []string{"red", "color", "colour"})
	assert.True(t, ok)
	assert.Equal(t, "color", best)
	assert.InDelta(t, 100*(8.0/9), score, 1e-9)

	_, _, ok = m.Best("x", nil)
	assert.False(t, ok)
}
