package strategy

import "sort"

// SortByPriority returns a copy of list ordered by ascending priority.
// Equal priorities keep their input order.
func SortByPriority(list []Strategy) []Strategy {
	sorted := make([]Strategy, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return sorted
}

// Dedupe drops every strategy whose (kind, value) pair was already seen.
func Dedupe(list []Strategy) []Strategy {
	type key struct {
		kind  Kind
		value string
	}
	seen := make(map[key]struct{}, len(list))
	out := make([]Strategy, 0, len(list))
	for _, s := range list {
		k := key{kind: s.Kind(), value: s.Value()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Truncate keeps the first max entries; max <= 0 means no cap.
func Truncate(list []Strategy, max int) []Strategy {
	if max <= 0 || len(list) <= max {
		return list
	}
	return list[:max]
}

// IsSorted reports whether list is in ascending priority order.
func IsSorted(list []Strategy) bool {
	return sort.SliceIsSorted(list, func(i, j int) bool {
		return list[i].Priority() < list[j].Priority()
	})
}
