package graph

import (
	"errors"
	"fmt"

	"github.com/matzehuels/conceptmap/pkg/diag"
)

// MaxNodeID is the largest accepted node ID. Views are indexed by ID, so the
// bound caps the slot count of both views.
const MaxNodeID = 1 << 20

var (
	// ErrInvalidNodeID is returned by [Builder.AddNode] for IDs outside
	// [0, MaxNodeID].
	ErrInvalidNodeID = errors.New("node ID out of range")

	// ErrReservedNodeID is returned by [Builder.AddNode] for ID 0, which is
	// reserved for the synthetic root created by [SynthesizeRoot].
	ErrReservedNodeID = errors.New("node ID 0 is reserved for the synthetic root")

	// ErrDuplicateNodeID is returned by [Builder.AddNode] when the ID is
	// already taken. Node identity is permanent once created.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidPriority is returned by [Builder.AddNode] when the priority is
	// outside [MinPriority, MaxPriority].
	ErrInvalidPriority = errors.New("priority out of range")

	// ErrAlreadyLinked is returned by [Builder.LinkEdges] on a second call.
	ErrAlreadyLinked = errors.New("edges already linked")
)

// LinkStats summarizes one [Builder.LinkEdges] pass.
type LinkStats struct {
	Full     int // edges linked in the full view
	Filtered int // edges linked in the filtered view
	Dangling int // edges dropped from both views (unknown endpoint)
	Omitted  int // edges linked in the full view only
}

// Builder populates a full and a filtered [View] from raw records.
//
// Every accepted node is constructed twice, once per view, so that the two
// views accumulate independent relation sets.
type Builder struct {
	cutoff   Cutoff
	full     *View
	filtered *View
	log      *diag.Log
	linked   bool
}

// NewBuilder creates a builder for the given cutoff. Rejections and skips are
// appended to log, which may be nil.
func NewBuilder(cutoff Cutoff, log *diag.Log) *Builder {
	return &Builder{
		cutoff:   cutoff,
		full:     NewView(),
		filtered: NewView(),
		log:      log,
	}
}

// Cutoff returns the builder's cutoff.
func (b *Builder) Cutoff() Cutoff { return b.cutoff }

// Full returns the full view.
func (b *Builder) Full() *View { return b.full }

// Filtered returns the cutoff-filtered view.
func (b *Builder) Filtered() *View { return b.filtered }

// AddNode stores a node in the full view and, if its priority is admitted by
// the cutoff, an independent copy in the filtered view. Both views are grown
// so that slot id exists in each.
//
// Rejected records are logged and reported through the returned error; the
// builder state is unchanged in that case.
func (b *Builder) AddNode(id int, text string, priority Priority, week int, class string) error {
	if err := b.checkNode(id, priority); err != nil {
		b.log.Warnf("Invalid node record %d (%q): %v; skipped", id, text, err)
		return fmt.Errorf("node %d: %w", id, err)
	}

	b.full.grow(id)
	b.filtered.grow(id)

	b.full.set(NewNode(id, text, priority, week, class))
	if b.cutoff.Admits(priority) {
		b.filtered.set(NewNode(id, text, priority, week, class))
	} else {
		b.log.Infof("Node%d with priority level %d ignored under cutoff %d", id, priority, b.cutoff)
	}
	return nil
}

func (b *Builder) checkNode(id int, priority Priority) error {
	switch {
	case id < 0, id > MaxNodeID:
		return ErrInvalidNodeID
	case id == 0:
		return ErrReservedNodeID
	case b.full.Has(id):
		return ErrDuplicateNodeID
	case !priority.Valid():
		return ErrInvalidPriority
	}
	return nil
}

// LinkEdges resolves the raw edge list, in order, against both views.
//
// An edge whose endpoint is missing from the full view is dropped from both
// views. Otherwise it is linked in the full view, and also in the filtered
// view when both endpoints survived the cutoff. LinkEdges may be called once.
func (b *Builder) LinkEdges(edges []EdgeRef) (LinkStats, error) {
	var stats LinkStats
	if b.linked {
		return stats, ErrAlreadyLinked
	}
	b.linked = true

	for _, e := range edges {
		from, okFrom := b.full.Node(e.From)
		to, okTo := b.full.Node(e.To)
		if !okFrom || !okTo {
			b.log.Warnf("Path %d to %d refers to undefined node(s)", e.From, e.To)
			stats.Dangling++
			continue
		}
		b.full.link(from, to)
		stats.Full++

		ffrom, okFrom := b.filtered.Node(e.From)
		fto, okTo := b.filtered.Node(e.To)
		if !okFrom || !okTo {
			b.log.Infof("Path %d to %d omitted from filtered view under cutoff %d", e.From, e.To, b.cutoff)
			stats.Omitted++
			continue
		}
		b.filtered.link(ffrom, fto)
		stats.Filtered++
	}
	return stats, nil
}
