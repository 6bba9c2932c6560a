// Package api serves read-only json views of the vehicle catalog and content hub.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"vitrina/catalog"
	nt "vitrina/entity"
	"vitrina/view"
)

// VehicleSource supplies vehicle snapshots.
type VehicleSource interface {
	Name() string
	Vehicles(ctx context.Context, status catalog.Status) ([]catalog.Vehicle, error)
}

// Server routes view requests over a vehicle source and an optional set of posts.
type Server struct {
	router *chi.Mux
	server *http.Server

	source      VehicleSource
	status      catalog.Status
	vehicles    *view.Schema[catalog.Vehicle]
	defaultSort *nt.Sort
	posts       []catalog.Post

	logger nt.Logger
}

// Options tune what the server shows.
type Options struct {
	Status      catalog.Status
	DefaultSort *nt.Sort
	Schema      *view.Schema[catalog.Vehicle]
	Posts       []catalog.Post
}

// NewServer creates a server, falling back to the catalog schema and sort.
func NewServer(source VehicleSource, opt Options, lgr nt.Logger) *Server {

	srv := &Server{
		router:      chi.NewRouter(),
		source:      source,
		status:      opt.Status,
		vehicles:    opt.Schema,
		defaultSort: opt.DefaultSort,
		posts:       opt.Posts,
		logger:      lgr,
	}

	if srv.vehicles == nil {
		srv.vehicles = catalog.VehicleSchema
	}
	if srv.defaultSort == nil {
		srt := catalog.DefaultVehicleSort
		srv.defaultSort = &srt
	}

	srv.setupMiddleware()
	srv.setupRoutes()
	return srv
}

func (srv *Server) setupMiddleware() {
	srv.router.Use(middleware.RequestID)
	srv.router.Use(middleware.RealIP)
	srv.router.Use(srv.logRequests)
	srv.router.Use(middleware.Recoverer)
	srv.router.Use(middleware.Timeout(30 * time.Second))
}

func (srv *Server) setupRoutes() {

	srv.router.Route("/vehicles", func(r chi.Router) {
		r.Get("/", srv.handleVehicles)
		r.Get("/facets/{field}", srv.handleVehicleFacets)
	})

	srv.router.Route("/posts", func(r chi.Router) {
		r.Get("/", srv.handlePosts)
		r.Get("/facets/{field}", srv.handlePostFacets)
	})
}

// Start listens on addr until Shutdown.
func (srv *Server) Start(ctx context.Context, addr string) (err error) {

	srv.server = &http.Server{
		Addr:         addr,
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srv.logger.Info(ctx, "starting server", "addr", addr, "source", srv.source.Name())

	err = srv.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrapf(err, "failed to listen on %s", addr)
}

func (srv *Server) Shutdown(ctx context.Context) error {
	if srv.server == nil {
		return nil
	}
	return srv.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (srv *Server) Router() *chi.Mux {
	return srv.router
}

// logRequests logs each request with its id, status and duration.
func (srv *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		srv.logger.Info(r.Context(), "request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).String(),
		)
	})
}
