package reconcile

import (
	"fmt"
	"strconv"
	"strings"
)

// RepairCount parses a count that may arrive with ambiguous dot
// separators, e.g. "1.436.234" (thousands-grouped) or "1436.0" (float
// noise). Rules:
//
//   - exactly two dot-separated parts with a single-digit fraction:
//     parse as float and truncate ("1436.0" -> 1436);
//   - exactly two parts with a longer fraction: the dot is grouping
//     noise, concatenate ("1.436" -> 1436);
//   - any other number of parts: strip every dot and parse
//     ("1.436.234" -> 1436234).
//
// A value no rule can parse returns an ErrRepairFailed-wrapped error;
// callers null the field and drop the row.
func RepairCount(raw string) (int64, error) {
	parts := strings.Split(raw, ".")

	if len(parts) == 2 {
		if len(parts[1]) == 1 {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q: %v", ErrRepairFailed, raw, err)
			}
			return int64(f), nil
		}
		v, err := strconv.ParseInt(parts[0]+parts[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrRepairFailed, raw, err)
		}
		return v, nil
	}

	v, err := strconv.ParseInt(strings.ReplaceAll(raw, ".", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrRepairFailed, raw, err)
	}
	return v, nil
}
