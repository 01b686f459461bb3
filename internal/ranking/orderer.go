package ranking

import (
	"cmp"
	"slices"
)

// comparePoints orders by total points, then wins, then sets won, all descending.
func comparePoints(a, b PlayerStats) int {
	if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Totals.Wins, a.Totals.Wins); c != 0 {
		return c
	}
	return cmp.Compare(b.Totals.SetsWon, a.Totals.SetsWon)
}

func (c Categories) compareClass(a, b PlayerStats) int {
	if d := cmp.Compare(c.Index(a.Category), c.Index(b.Category)); d != 0 {
		return d
	}
	return comparePoints(a, b)
}

// order returns the indices of stats sorted by compare. Ties keep input order.
func order(stats []PlayerStats, compare func(a, b PlayerStats) int) []int {
	idx := make([]int, len(stats))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return compare(stats[i], stats[j])
	})
	return idx
}

func pick(stats []PlayerStats, idx []int) []PlayerStats {
	out := make([]PlayerStats, len(idx))
	for pos, i := range idx {
		out[pos] = stats[i]
	}
	return out
}

// SortByPoints returns a copy of stats ordered by the points tie-break chain.
func SortByPoints(stats []PlayerStats) []PlayerStats {
	return pick(stats, order(stats, comparePoints))
}

// SortByClass returns a copy of stats ordered by class first and then by the
// points tie-break chain.
func (c Categories) SortByClass(stats []PlayerStats) []PlayerStats {
	return pick(stats, order(stats, c.compareClass))
}

// Rank assigns CategoryPosition and GlobalPosition and returns the players in
// global order. The input slice is not modified.
func (c Categories) Rank(stats []PlayerStats) []PlayerStats {
	categoryPositions := make([]int, len(stats))
	counters := make(map[string]int)
	for _, i := range order(stats, comparePoints) {
		label := c.Label(stats[i].Category)
		counters[label]++
		categoryPositions[i] = counters[label]
	}

	global := order(stats, c.compareClass)
	ranked := make([]PlayerStats, len(global))
	for pos, i := range global {
		ranked[pos] = stats[i]
		ranked[pos].CategoryPosition = categoryPositions[i]
		ranked[pos].GlobalPosition = pos + 1
	}
	return ranked
}

// Group splits a globally ordered ranking by category, in class order with
// the unranked group last. Empty categories are omitted.
func (c Categories) Group(ranked []PlayerStats) []CategoryGroup {
	buckets := make(map[string][]PlayerStats)
	for _, s := range ranked {
		label := c.Label(s.Category)
		buckets[label] = append(buckets[label], s)
	}

	labels := append(slices.Clone([]string(c)), UnrankedCategory)
	groups := make([]CategoryGroup, 0, len(buckets))
	for _, label := range labels {
		if players, ok := buckets[label]; ok {
			groups = append(groups, CategoryGroup{Category: label, Players: players})
		}
	}
	return groups
}
