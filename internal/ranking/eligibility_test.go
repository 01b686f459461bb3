package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func positioned(id string, pos int) PlayerStats {
	return PlayerStats{ID: id, Name: id, GlobalPosition: pos}
}

func TestCanChallenge(t *testing.T) {
	tests := []struct {
		name    string
		a, b    PlayerStats
		allowed bool
	}{
		{"adjacent", positioned("a", 4), positioned("b", 5), true},
		{"edge of window", positioned("a", 1), positioned("b", 4), true},
		{"outside window", positioned("a", 1), positioned("b", 5), false},
		{"self", positioned("a", 2), positioned("a", 2), false},
		{"unset challenger", positioned("a", 0), positioned("b", 1), false},
		{"unset target", positioned("a", 1), positioned("b", 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forward := CanChallenge(&tt.a, &tt.b)
			backward := CanChallenge(&tt.b, &tt.a)
			assert.Equal(t, tt.allowed, forward.Allowed)
			assert.Equal(t, forward.Allowed, backward.Allowed, "rule is symmetric")
			if !tt.allowed {
				assert.NotEmpty(t, forward.Reason)
			}
		})
	}
}

func TestCanChallenge_NilPlayer(t *testing.T) {
	p := positioned("a", 1)
	assert.False(t, CanChallenge(nil, &p).Allowed)
	assert.False(t, CanChallenge(&p, nil).Allowed)
}

func TestGetEligibleOpponents(t *testing.T) {
	ranked := make([]PlayerStats, 0, 8)
	for i := 1; i <= 8; i++ {
		ranked = append(ranked, positioned(string(rune('a'+i-1)), i))
	}

	assert.Equal(t, []string{"a", "b", "c", "e", "f", "g"}, ids(GetEligibleOpponents("d", ranked)))
	assert.Equal(t, []string{"b", "c", "d"}, ids(GetEligibleOpponents("a", ranked)))
	assert.Empty(t, GetEligibleOpponents("missing", ranked))
}

func TestMonthRef(t *testing.T) {
	assert.Equal(t, "2024-03", MonthRef(time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC)))
}
