package paging

import (
	"strconv"

	"github.com/ncobase/pagewalk/ecode"
)

// ParseID parses a decimal item identifier.
func ParseID(id string) (uint64, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, ecode.Parse(ecode.FieldIsInvalid("id")+": "+strconv.Quote(id), err)
	}
	return n, nil
}

// MiddleID returns the ID of the item whose creation time is closest to the
// midpoint between the oldest and newest items. Ties go to the smallest ID.
func MiddleID[T Timestamped](items []T) (uint64, error) {
	if len(items) == 0 {
		return 0, ecode.InvalidArgument(ecode.FieldIsEmpty("items"))
	}

	minNanos, maxNanos := items[0].GetCreatedAt().UnixNano(), items[0].GetCreatedAt().UnixNano()
	for _, item := range items[1:] {
		n := item.GetCreatedAt().UnixNano()
		minNanos = min(minNanos, n)
		maxNanos = max(maxNanos, n)
	}
	mid := (maxNanos + minNanos) / 2

	var (
		bestID   uint64
		bestDiff int64 = -1
	)
	for _, item := range items {
		id, err := ParseID(item.GetID())
		if err != nil {
			return 0, err
		}
		diff := item.GetCreatedAt().UnixNano() - mid
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff || (diff == bestDiff && id < bestID) {
			bestID, bestDiff = id, diff
		}
	}
	return bestID, nil
}
