package stats

import (
	"fmt"
	"strings"
)

// Stat identifies one of the statistics computed for a track.
type Stat uint8

const (
	TotalDistance Stat = 1 << iota
	TotalTime
	MeanSpeed
	MedianSpeed
	MaxElevation
	MinElevation
)

// Set is a bitmask of statistics.
type Set uint8

// All selects every statistic.
const All = Set(TotalDistance | TotalTime | MeanSpeed | MedianSpeed | MaxElevation | MinElevation)

// Order in which statistics are listed and reported.
var Order = []Stat{TotalDistance, TotalTime, MeanSpeed, MedianSpeed, MaxElevation, MinElevation}

var names = map[Stat]string{
	TotalDistance: "distance",
	TotalTime:     "time",
	MeanSpeed:     "mean-speed",
	MedianSpeed:   "median-speed",
	MaxElevation:  "max-elevation",
	MinElevation:  "min-elevation",
}

func (s Stat) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("Stat(%d)", uint8(s))
}

// Of builds a Set from individual statistics.
func Of(stats ...Stat) Set {
	var set Set
	for _, s := range stats {
		set |= Set(s)
	}
	return set
}

// Has reports whether s is in the set.
func (set Set) Has(s Stat) bool {
	return set&Set(s) != 0
}

func (set Set) String() string {
	var parts []string
	for _, s := range Order {
		if set.Has(s) {
			parts = append(parts, s.String())
		}
	}
	return strings.Join(parts, ",")
}

// ParseSet parses a comma-separated list of statistic names. "all" and the
// empty string select every statistic.
func ParseSet(list string) (Set, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return All, nil
	}

	var set Set
	for _, field := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "all" {
			set |= All
			continue
		}

		found := false
		for _, s := range Order {
			if names[s] == name {
				set |= Set(s)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown statistic %q (valid: all, %s)", field, All)
		}
	}
	return set, nil
}
