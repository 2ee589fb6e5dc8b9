package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/conceptmap/pkg/diag"
	"github.com/matzehuels/conceptmap/pkg/errors"
	cmio "github.com/matzehuels/conceptmap/pkg/io"
	"github.com/matzehuels/conceptmap/pkg/observability"
	"github.com/matzehuels/conceptmap/pkg/source"
)

// Read decodes the input file selected by opts. Anomalies in legacy input
// are appended to dlog.
func Read(ctx context.Context, opts Options, dlog *diag.Log) (d *source.Description, err error) {
	path := opts.InputPath()
	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, opts.Name, opts.Source)
	start := time.Now()
	defer func() {
		nodes, edges := 0, 0
		if d != nil {
			nodes, edges = len(d.Nodes), len(d.Edges)
		}
		hooks.OnReadComplete(ctx, opts.Name, nodes, edges, time.Since(start), err)
	}()

	switch opts.Source {
	case SourceLegacy:
		return readLegacy(path, dlog)
	case SourceFlat:
		return cmio.ImportFlat(path)
	default:
		return source.ImportJSON(path)
	}
}

func readLegacy(path string, dlog *diag.Log) (*source.Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return source.ReadLegacy(f, dlog)
}
