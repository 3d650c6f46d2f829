package enums

import "fmt"

// PoolSort selects the ordering of the public pool listing.
type PoolSort string

const (
	// PoolSortPart orders by part display name, part number tiebreak.
	PoolSortPart PoolSort = "part"
	// PoolSortOwner orders by owner display name, then part name, then part number.
	PoolSortOwner PoolSort = "owner"
)

var validPoolSorts = []PoolSort{PoolSortPart, PoolSortOwner}

func (s PoolSort) String() string {
	return string(s)
}

func (s PoolSort) IsValid() bool {
	for _, candidate := range validPoolSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePoolSort converts raw input into a PoolSort, defaulting to part order.
func ParsePoolSort(value string) (PoolSort, error) {
	if value == "" {
		return PoolSortPart, nil
	}
	for _, candidate := range validPoolSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pool sort %q", value)
}
