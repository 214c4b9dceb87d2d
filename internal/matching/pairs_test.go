package matching

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/courtsplit/internal/domain"
)

func players(n int) []*domain.Player {
	out := make([]*domain.Player, n)
	for i := range out {
		out[i] = &domain.Player{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("P%d", i), Status: domain.PlayerRegistered}
	}
	return out
}

func TestPairs(t *testing.T) {
	t.Run("even_headcount", func(t *testing.T) {
		groups := NewMatcher(rand.New(rand.NewPCG(1, 2))).Pairs(players(6))
		require.Len(t, groups, 3)
		seen := map[string]bool{}
		for _, g := range groups {
			assert.Len(t, g, 2)
			for _, m := range g {
				assert.False(t, seen[m.PlayerID])
				seen[m.PlayerID] = true
			}
		}
		assert.Len(t, seen, 6)
	})

	t.Run("odd_headcount_joins_last_group", func(t *testing.T) {
		groups := NewMatcher(rand.New(rand.NewPCG(3, 4))).Pairs(players(5))
		require.Len(t, groups, 2)
		assert.Len(t, groups[0], 2)
		assert.Len(t, groups[1], 3)
	})

	t.Run("only_registered_players", func(t *testing.T) {
		ps := players(3)
		ps[1].Status = domain.PlayerWaitlist
		groups := NewMatcher(nil).Pairs(ps)
		require.Len(t, groups, 1)
		for _, m := range groups[0] {
			assert.NotEqual(t, "p1", m.PlayerID)
		}
	})

	t.Run("too_few_players", func(t *testing.T) {
		assert.Empty(t, NewMatcher(nil).Pairs(players(1)))
	})

	t.Run("same_seed_same_pairs", func(t *testing.T) {
		a := NewMatcher(rand.New(rand.NewPCG(9, 9))).Pairs(players(8))
		b := NewMatcher(rand.New(rand.NewPCG(9, 9))).Pairs(players(8))
		assert.Equal(t, a, b)
	})

	t.Run("shared_matcher_across_goroutines", func(t *testing.T) {
		m := NewMatcher(nil)
		ps := players(7)

		var wg sync.WaitGroup
		results := make([][]Group, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = m.Pairs(ps)
			}(i)
		}
		wg.Wait()

		for _, groups := range results {
			require.Len(t, groups, 3)
			total := 0
			for _, g := range groups {
				total += len(g)
			}
			assert.Equal(t, 7, total)
		}
	})
}
