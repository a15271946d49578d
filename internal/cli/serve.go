package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/badgeforge/badgeforge/pkg/config"
	bferrors "github.com/badgeforge/badgeforge/pkg/errors"
	"github.com/badgeforge/badgeforge/pkg/pipeline"
	"github.com/badgeforge/badgeforge/pkg/render/sink"
	"github.com/badgeforge/badgeforge/pkg/store"
	"github.com/badgeforge/badgeforge/pkg/text"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	configPath string
	offline    bool
	noCache    bool
}

// serveCommand creates the serve command running the badge preview server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve badge previews over HTTP",
		Long: `Serve renders badges on demand for preview in a browser:

  GET /events/{event-id}/attendees/{attendee-id}/badge.svg
  GET /events/{event-id}/attendees/{attendee-id}/badge.json
  GET /healthz

Badges are composed per request from the configured store, so edits to
event data show up on refresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file overriding the default layout")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip geocoding and location graphics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the location cache")

	return cmd
}

// previewServer holds the shared render pipeline behind the HTTP handlers.
type previewServer struct {
	store    store.Store
	composer *pipeline.Composer
	svg      *sink.SVGSink
	cli      *CLI
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	runner, m, err := c.newRunner(cfg, "", nil, 1, opts.offline, opts.noCache)
	if err != nil {
		return err
	}

	srv := &previewServer{
		store:    st,
		composer: runner.Composer,
		svg:      newPreviewSink(m, cfg),
		cli:      c,
	}

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("preview server listening", "addr", opts.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newPreviewSink builds an SVG sink used only for in-memory rendering.
func newPreviewSink(m *text.Measurer, cfg config.Config) *sink.SVGSink {
	return sink.NewSVGSink("", m, cfg)
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/events/{eventID}", func(r chi.Router) {
		r.Get("/attendees", s.handleAttendees)
		r.Get("/attendees/{attendeeID}/badge.svg", s.handleBadgeSVG)
		r.Get("/attendees/{attendeeID}/badge.json", s.handleBadgeJSON)
	})
	return r
}

func (s *previewServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleAttendees lists the attendee ids of an event.
func (s *previewServer) handleAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := s.store.Attendees(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	ids := make([]string, len(attendees))
	for i, att := range attendees {
		ids[i] = att.ID
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ids)
}

func (s *previewServer) handleBadgeSVG(w http.ResponseWriter, r *http.Request) {
	comp, err := s.compose(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(s.svg.Render(comp))
}

func (s *previewServer) handleBadgeJSON(w http.ResponseWriter, r *http.Request) {
	comp, err := s.compose(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(comp)
}

func (s *previewServer) compose(r *http.Request) (*pipeline.Composition, error) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")
	attendeeID := chi.URLParam(r, "attendeeID")

	event, err := s.store.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	att, err := s.store.Attendee(ctx, eventID, attendeeID)
	if err != nil {
		return nil, err
	}
	return s.composer.Compose(ctx, event, att, "")
}

// writeError maps pipeline error codes onto HTTP statuses.
func (s *previewServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case bferrors.Is(err, bferrors.ErrCodeEventNotFound),
		bferrors.Is(err, bferrors.ErrCodeAttendeeNotFound):
		status = http.StatusNotFound
	case bferrors.Is(err, bferrors.ErrCodeInvalidInput),
		bferrors.Is(err, bferrors.ErrCodeInvalidTag),
		bferrors.Is(err, bferrors.ErrCodeInvalidAttendee),
		bferrors.Is(err, bferrors.ErrCodeInvalidEvent):
		status = http.StatusUnprocessableEntity
	}
	s.cli.Logger.Error("request failed", "status", status, "err", err)
	http.Error(w, err.Error(), status)
}
