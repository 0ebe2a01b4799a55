// Package selection picks a 1-based subset of index entries from --range
// and --list flags.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter returns all when both rng and list are empty. rng ("3-7") wins over
// list ("1,4,9"). Out-of-range list entries are skipped.
func Filter[T any](all []T, rng, list string) ([]T, error) {
	if rng != "" {
		return Range(all, rng)
	}
	if list != "" {
		return List(all, list)
	}
	return all, nil
}

func Range[T any](all []T, rng string) ([]T, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q: want A-B", rng)
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("invalid range %q: want A-B", rng)
	}
	if start <= 0 || start > end {
		return nil, fmt.Errorf("invalid range %q", rng)
	}
	if start > len(all) {
		return []T{}, nil
	}

	return all[start-1 : min(end, len(all))], nil
}

func List[T any](all []T, list string) ([]T, error) {
	out := []T{}
	for _, n := range strings.Split(list, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		idx, err := atoi(n)
		if err != nil {
			return nil, fmt.Errorf("invalid list entry %q", n)
		}
		if idx > 0 && idx <= len(all) {
			out = append(out, all[idx-1])
		}
	}

	return out, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
