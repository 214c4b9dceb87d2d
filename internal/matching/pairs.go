// Package matching suggests doubles partners. Results are random on purpose and carry no
// fairness guarantee; billing never depends on them.
package matching

import (
	"math/rand/v2"
	"sync"

	"github.com/baechuer/courtsplit/internal/domain"
)

type Member struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// Group is usually a pair; with an odd headcount the last group has three members.
type Group []Member

// Matcher is safe for concurrent use; *rand.Rand is not, so shuffles are serialized.
type Matcher struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMatcher uses r for shuffling, or a randomly seeded source when r is nil.
func NewMatcher(r *rand.Rand) *Matcher {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Matcher{rnd: r}
}

// Pairs shuffles the registered players into groups of two.
func (m *Matcher) Pairs(players []*domain.Player) []Group {
	members := make([]Member, 0, len(players))
	for _, p := range players {
		if p.Status != domain.PlayerRegistered {
			continue
		}
		members = append(members, Member{PlayerID: p.ID, Name: p.Name})
	}
	if len(members) < 2 {
		return []Group{}
	}
	m.mu.Lock()
	m.rnd.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
	m.mu.Unlock()

	groups := make([]Group, 0, len(members)/2)
	for i := 0; i+1 < len(members); i += 2 {
		groups = append(groups, Group{members[i], members[i+1]})
	}
	if len(members)%2 == 1 {
		last := len(groups) - 1
		groups[last] = append(groups[last], members[len(members)-1])
	}
	return groups
}
