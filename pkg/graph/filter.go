package graph

import (
	"fmt"
	"strconv"
)

// Priority is a node's importance level. Lower values are more important.
type Priority int

const (
	// RootPriority is given to synthetic roots. It is admitted by every cutoff.
	RootPriority Priority = 0
	// MinPriority is the most important priority an input node may carry.
	MinPriority Priority = 1
	// MaxPriority is the least important priority an input node may carry.
	MaxPriority Priority = 5
)

// Valid reports whether p is within [MinPriority, MaxPriority].
func (p Priority) Valid() bool { return p >= MinPriority && p <= MaxPriority }

// Cutoff is the inclusive maximum priority admitted into the filtered view.
type Cutoff Priority

// MaxCutoff admits every valid node.
const MaxCutoff = Cutoff(MaxPriority)

// Admits reports whether a node with priority p belongs in the filtered view.
func (c Cutoff) Admits(p Priority) bool { return p <= Priority(c) }

// Valid reports whether c lies in the priority range.
func (c Cutoff) Valid() bool { return Priority(c).Valid() }

// String returns the numeric value.
func (c Cutoff) String() string { return strconv.Itoa(int(c)) }

// ParseCutoff parses a decimal cutoff and checks that it is within range.
func ParseCutoff(s string) (Cutoff, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("cutoff %q is not an integer", s)
	}
	c := Cutoff(v)
	if !c.Valid() {
		return 0, fmt.Errorf("cutoff %d out of range [%d, %d]", v, MinPriority, MaxPriority)
	}
	return c, nil
}
