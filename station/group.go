// Package station aggregates physical GTFS stops into logical stations
// ("stop groups") by shared identifier prefix, and resolves a user-typed
// stop name to the group it most likely refers to.
package station

import (
	"unicode"

	"github.com/pkg/errors"

	"transit.dev/earliest/model"
)

// RootID returns the root id of a stop id: the maximal leading substring
// ending just before the first alphabetic character strictly after index
// 0. If no such character exists, the root is the full id.
//
// Examples: "U50S1" -> "U50", "U50S2" -> "U50", "T12A" -> "T12".
func RootID(stopID string) string {
	runes := []rune(stopID)
	for i := 1; i < len(runes); i++ {
		if unicode.IsLetter(runes[i]) {
			return string(runes[:i])
		}
	}
	return stopID
}

// Group is a logical station: the set of physical stops sharing a root id,
// and the set of distinct display names observed among them.
type Group struct {
	RootID string
	Stops  []string // stop ids, in first-encountered order
	Names  []string // distinct display names, in first-encountered order
}

// Index groups stops by root id and resolves typed names to groups.
type Index struct {
	groups map[string]*Group
	order  []string // root ids, in first-encountered order
}

// NewIndex groups the given stops by RootID.
func NewIndex(stops []model.Stop) *Index {
	idx := &Index{groups: map[string]*Group{}}

	for _, s := range stops {
		root := RootID(s.ID)

		g, found := idx.groups[root]
		if !found {
			g = &Group{RootID: root}
			idx.groups[root] = g
			idx.order = append(idx.order, root)
		}

		g.Stops = append(g.Stops, s.ID)

		seen := false
		for _, n := range g.Names {
			if n == s.Name {
				seen = true
				break
			}
		}
		if !seen {
			g.Names = append(g.Names, s.Name)
		}
	}

	return idx
}

// Group returns the group for a root id, if any.
func (idx *Index) Group(rootID string) (*Group, bool) {
	g, found := idx.groups[rootID]
	return g, found
}

// Resolve scores every (group, observed name) pair by the length, in code
// points, of the longest common prefix with the query, and returns the
// group owning the highest-scoring name. Ties are broken by whichever
// group/name pair was encountered first while building the index — this is
// why Index preserves insertion order rather than iterating its map
// directly.
func (idx *Index) Resolve(query string) (*Group, error) {
	if len(idx.order) == 0 {
		return nil, errors.New("unknown stop: no groups in index")
	}

	queryRunes := []rune(query)

	var best *Group
	bestScore := -1

	for _, root := range idx.order {
		g := idx.groups[root]
		for _, name := range g.Names {
			score := longestCommonPrefixLen(queryRunes, []rune(name))
			if score > bestScore {
				bestScore = score
				best = g
			}
		}
	}

	if best == nil {
		return nil, errors.Errorf("unknown stop: %q", query)
	}

	return best, nil
}

func longestCommonPrefixLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
