package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/conceptmap/pkg/buildinfo"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/httputil"
	"github.com/matzehuels/conceptmap/pkg/pipeline"
	"github.com/matzehuels/conceptmap/pkg/render/nodelink"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	inputDir string
	cutoff   int
	legacy   bool
	noCache  bool
}

// serveCommand creates the command that serves converted maps over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve concept maps as tree, flat, DOT and SVG over HTTP",
		Long: `Serve converts maps on request. Every request is an independent run that
reads <name>_DTM.json from the input directory; nothing is written to disk.

Routes:
  GET /healthz
  GET /maps/{name}/tree?cutoff=N   nested tree JSON
  GET /maps/{name}/flat?cutoff=N   flat node and path lists
  GET /maps/{name}/dot             DOT text of the full map
  GET /maps/{name}/svg             rendered DOT
  GET /maps/{name}/log?cutoff=N    diagnostics of the run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("addr") && cfg.Serve.Addr != "" {
				opts.addr = cfg.Serve.Addr
			}
			if !flags.Changed("input-dir") && cfg.InputDir != "" {
				opts.inputDir = cfg.InputDir
			}
			if !flags.Changed("cutoff") && cfg.Cutoff != 0 {
				opts.cutoff = cfg.Cutoff
			}
			if !flags.Changed("legacy") {
				opts.legacy = cfg.Legacy
			}
			if err := errors.ValidateCutoffValue(opts.cutoff); err != nil {
				return err
			}
			if err := errors.ValidatePath(opts.inputDir); err != nil {
				return err
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			base := pipeline.Options{
				Cutoff:   opts.cutoff,
				Source:   pipeline.SourceJSON,
				InputDir: opts.inputDir,
				Styles:   cfg.Styles,
			}
			if opts.legacy {
				base.Source = pipeline.SourceLegacy
			}
			return c.runServe(cmd.Context(), opts.addr, newServer(runner, base))
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.inputDir, "input-dir", pipeline.DefaultDir, "directory holding the input files")
	cmd.Flags().IntVar(&opts.cutoff, "cutoff", pipeline.DefaultCutoff, "cutoff used when a request has none")
	cmd.Flags().BoolVar(&opts.legacy, "legacy", false, "read <name>.dot in the legacy grammar")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runServe listens on addr until ctx is cancelled, then shuts down.
func (c *CLI) runServe(ctx context.Context, addr string, s *server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printSuccess("Serving concept maps on %s", StyleLink.Render(addr))
	printDetail("Input directory: %s", s.base.InputDir)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		printInfo("Server stopped")
		return ctx.Err()
	}
}

// server answers map requests with independent pipeline runs.
type server struct {
	runner *pipeline.Runner
	base   pipeline.Options // never validated; copied per request
}

func newServer(runner *pipeline.Runner, base pipeline.Options) *server {
	return &server{runner: runner, base: base}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/maps/{name}", func(r chi.Router) {
		r.Get("/tree", s.handleJSON(pipeline.FormatTree))
		r.Get("/flat", s.handleJSON(pipeline.FormatFlat))
		r.Get("/dot", s.handleDOT)
		r.Get("/svg", s.handleSVG)
		r.Get("/log", s.handleLog)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *server) handleJSON(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, ok := s.run(w, r, format, nil)
		if !ok {
			return
		}
		httputil.WriteBytes(w, httputil.ContentTypeJSON, result.Artifacts[pipeline.ArtifactJSON])
	}
}

func (s *server) handleDOT(w http.ResponseWriter, r *http.Request) {
	result, ok := s.run(w, r, pipeline.FormatTree, nil)
	if !ok {
		return
	}
	httputil.WriteBytes(w, httputil.ContentTypeDOT, []byte(result.DOT))
}

func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	svg := string(nodelink.FormatSVG)
	result, ok := s.run(w, r, pipeline.FormatTree, []string{svg})
	if !ok {
		return
	}
	httputil.WriteBytes(w, httputil.ContentTypeSVG, result.Artifacts[svg])
}

func (s *server) handleLog(w http.ResponseWriter, r *http.Request) {
	result, ok := s.run(w, r, pipeline.FormatTree, nil)
	if !ok {
		return
	}
	httputil.WriteBytes(w, "text/plain; charset=utf-8", []byte(result.Log.String()))
}

// run converts the requested map in memory. On failure it writes the error
// response and reports false.
func (s *server) run(w http.ResponseWriter, r *http.Request, format string, render []string) (*pipeline.Result, bool) {
	opts := s.base
	opts.Name = chi.URLParam(r, "name")
	opts.Format = format
	opts.Render = render
	if v := r.URL.Query().Get("cutoff"); v != "" {
		cutoff, err := errors.ValidateCutoff(v)
		if err != nil {
			httputil.WriteError(w, r, err)
			return nil, false
		}
		opts.Cutoff = cutoff
	}

	result, err := s.runner.Run(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, r, err)
		return nil, false
	}
	return result, true
}
