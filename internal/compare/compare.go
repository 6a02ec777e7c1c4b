package compare

import (
	"github.com/wadahiro/urllens/internal/urlparse"
)

// Result classifies parameter keys across two or more URLs.
// Missing and ValueChanged are disjoint and sorted in collation order.
type Result struct {
	Missing      []string // absent from at least one URL
	ValueChanged []string // present in every URL with differing values
	AllIdentical bool     // every URL carries exactly the same parameters
}

// Compare classifies every parameter key found in any of the given maps.
// A key missing somewhere is reported as missing even if the values differ
// where it does appear. Keys present everywhere with byte-identical values
// land in neither set. The classification is symmetric: no map is the
// baseline, all are compared as a group.
//
// Fewer than two maps is a no-op result. Nil maps count as empty maps.
func Compare(maps []map[string]string) Result {
	var res Result
	if len(maps) < 2 {
		return res
	}

	union := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			union[k] = struct{}{}
		}
	}

	for k := range union {
		everywhere := true
		changed := false
		first := ""
		seen := false
		for _, m := range maps {
			v, ok := m[k]
			if !ok {
				everywhere = false
				break
			}
			if !seen {
				first, seen = v, true
			} else if v != first {
				changed = true
			}
		}
		switch {
		case !everywhere:
			res.Missing = append(res.Missing, k)
		case changed:
			res.ValueChanged = append(res.ValueChanged, k)
		}
	}

	urlparse.SortKeys(res.Missing)
	urlparse.SortKeys(res.ValueChanged)

	res.AllIdentical = len(res.Missing) == 0 && len(res.ValueChanged) == 0
	return res
}
