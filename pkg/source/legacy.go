package source

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/matzehuels/conceptmap/pkg/diag"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/graph"
)

// Line patterns of the legacy grammar. Every pattern must match the whole
// line; the node definition only needs to match its prefix.
var (
	headerPattern    = regexp.MustCompile(`^\s*/\*\s*Priority\sLevel\s=\s([1-5])\s*Time\s=\s(\d{2})(\d{2})(\d{4})\s*\*/\s*$`)
	nodePattern      = regexp.MustCompile(`^\s*node(\d+)\[label = "([A-Za-z\d\s]+)"`)
	pathPattern      = regexp.MustCompile(`^\s*node(\d+)\s*->\s*node(\d+);\s*$`)
	multiPathPattern = regexp.MustCompile(`^\s*\{(node(\d)+,\s)+node(\d)+\}\s*->\s*node(\d+);\s*$`)
	nodeIDPattern    = regexp.MustCompile(`node(\d+)`)
	rankdirPattern   = regexp.MustCompile(`^\s*rankdir\s*=\s*"?([A-Za-z]+)"?\s*;?\s*$`)
	defaultsPattern  = regexp.MustCompile(`^\s*node\s*\[(.*)\]\s*;?\s*$`)
	attrPattern      = regexp.MustCompile(`(\w+)\s*=\s*("[^"]*"|[^,\s\]]+)`)
)

// DefaultRankdir is used when legacy input carries no rankdir line.
const DefaultRankdir = "TB"

const maxLineSize = 1 << 20

// ReadLegacy parses the legacy line grammar from r.
//
// A header comment "/* Priority Level = P Time = MMDDYYYY */" must be
// immediately followed by a "nodeN[label = ..." line. A header whose next line
// is not a node definition, or whose date is impossible, is logged and the
// pair is skipped. The node's week is the ISO week of the header date and its
// class is [graph.DefaultClass].
//
// "nodeA -> nodeB;" is a simple edge. "{nodeA, nodeB, ...} -> nodeN;" expands
// to one edge per source, each targeting the last node on the line.
//
// An optional "rankdir = X" line sets the layout direction and an optional
// "node [shape = ..., style = ..., fillcolor = ...]" line defines the default
// style. Any other line is ignored.
func ReadLegacy(r io.Reader, log *diag.Log) (*Description, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read legacy description")
	}

	d := &Description{Rankdir: DefaultRankdir, Styles: map[string]Style{}}
	for i, line := range lines {
		switch {
		case headerPattern.MatchString(line):
			next := ""
			if i+1 < len(lines) {
				next = lines[i+1]
			}
			if rec, ok := readNode(line, next, log); ok {
				d.Nodes = append(d.Nodes, rec)
			}
		case pathPattern.MatchString(line):
			m := pathPattern.FindStringSubmatch(line)
			from, errFrom := strconv.Atoi(m[1])
			to, errTo := strconv.Atoi(m[2])
			if errFrom != nil || errTo != nil {
				log.Warnf("Invalid node id in path (%s); skipped", line)
				continue
			}
			d.Edges = append(d.Edges, graph.EdgeRef{From: from, To: to})
		case multiPathPattern.MatchString(line):
			edges, err := expandMultiPath(line)
			if err != nil {
				log.Warnf("Invalid node id in path (%s); skipped", line)
				continue
			}
			d.Edges = append(d.Edges, edges...)
		case rankdirPattern.MatchString(line):
			d.Rankdir = rankdirPattern.FindStringSubmatch(line)[1]
		case defaultsPattern.MatchString(line):
			d.Styles[graph.DefaultClass] = parseDefaults(defaultsPattern.FindStringSubmatch(line)[1])
		}
	}
	return d, nil
}

func readNode(header, def string, log *diag.Log) (NodeRecord, bool) {
	m := nodePattern.FindStringSubmatch(def)
	if m == nil {
		log.Warnf("Invalid definition (%s) after pre info (%s)", def, header)
		return NodeRecord{}, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		log.Warnf("Invalid node id %s in definition (%s); skipped", m[1], def)
		return NodeRecord{}, false
	}
	h := headerPattern.FindStringSubmatch(header)
	priority, month, day, year := atoi(h[1]), atoi(h[2]), atoi(h[3]), atoi(h[4])

	week, ok := isoWeek(year, month, day)
	if !ok {
		log.Warnf("Invalid date %s/%s/%s in pre info for node%s; skipped", h[2], h[3], h[4], m[1])
		return NodeRecord{}, false
	}

	return NodeRecord{
		ID:       id,
		Label:    m[2],
		Priority: graph.Priority(priority),
		Week:     week,
		Class:    graph.DefaultClass,
	}, true
}

// expandMultiPath maps every listed source to the last node on the line.
func expandMultiPath(line string) ([]graph.EdgeRef, error) {
	ids := nodeIDPattern.FindAllStringSubmatch(line, -1)
	target, err := strconv.Atoi(ids[len(ids)-1][1])
	if err != nil {
		return nil, err
	}
	edges := make([]graph.EdgeRef, 0, len(ids)-1)
	for _, m := range ids[:len(ids)-1] {
		from, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, err
		}
		edges = append(edges, graph.EdgeRef{From: from, To: target})
	}
	return edges, nil
}

func parseDefaults(attrs string) Style {
	var s Style
	for _, m := range attrPattern.FindAllStringSubmatch(attrs, -1) {
		v := m[2]
		if uq, err := strconv.Unquote(v); err == nil {
			v = uq
		}
		switch m[1] {
		case "shape":
			s.Shape = v
		case "style":
			s.Style = v
		case "fillcolor":
			s.FillColor = v
		}
	}
	return s
}

// isoWeek returns the ISO 8601 week of the given date, rejecting dates that
// do not exist in the calendar.
func isoWeek(year, month, day int) (int, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, false
	}
	_, week := t.ISOWeek()
	return week, true
}

// atoi converts a short, bounded digit capture of the header pattern.
func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
