package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"vitrina/catalog"
	nt "vitrina/entity"
	"vitrina/view"
)

// reserved query keys, everything else names a facet
const (
	searchKey = "q"
	sortKey   = "sort"
	dirKey    = "dir"
)

type vehiclesResponse struct {
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Vehicles []catalog.Vehicle `json:"vehicles"`
}

type postsResponse struct {
	Count int            `json:"count"`
	Total int            `json:"total"`
	Posts []catalog.Post `json:"posts"`
}

type facetsResponse struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

func (srv *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {

	snap, err := snapshot(srv.vehicles, r.URL.Query(), srv.defaultSort)
	if err != nil {
		srv.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	vehicles, err := srv.source.Vehicles(r.Context(), srv.status)
	if err != nil {
		srv.logger.Error(r.Context(), "failed to fetch vehicles", err, "source", srv.source.Name())
		srv.writeError(w, r, http.StatusBadGateway, "vehicle store unavailable")
		return
	}

	visible := view.Compute(srv.vehicles, vehicles, snap)
	srv.writeJSON(w, r, vehiclesResponse{
		Count:    len(visible),
		Total:    len(vehicles),
		Vehicles: visible,
	})
}

func (srv *Server) handleVehicleFacets(w http.ResponseWriter, r *http.Request) {

	field := chi.URLParam(r, "field")
	if !isFacet(srv.vehicles, field) {
		srv.writeError(w, r, http.StatusNotFound, fmt.Sprintf("no such facet: %s", field))
		return
	}

	vehicles, err := srv.source.Vehicles(r.Context(), srv.status)
	if err != nil {
		srv.logger.Error(r.Context(), "failed to fetch vehicles", err, "source", srv.source.Name())
		srv.writeError(w, r, http.StatusBadGateway, "vehicle store unavailable")
		return
	}

	values, _ := view.Facets(srv.vehicles, vehicles, field)
	srv.writeJSON(w, r, facetsResponse{Field: field, Values: nonNil(values)})
}

func (srv *Server) handlePosts(w http.ResponseWriter, r *http.Request) {

	snap, err := snapshot(catalog.PostSchema, r.URL.Query(), nil)
	if err != nil {
		srv.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	visible := view.Compute(catalog.PostSchema, srv.posts, snap)
	srv.writeJSON(w, r, postsResponse{
		Count: len(visible),
		Total: len(srv.posts),
		Posts: visible,
	})
}

func (srv *Server) handlePostFacets(w http.ResponseWriter, r *http.Request) {

	field := chi.URLParam(r, "field")
	if !isFacet(catalog.PostSchema, field) {
		srv.writeError(w, r, http.StatusNotFound, fmt.Sprintf("no such facet: %s", field))
		return
	}

	values, _ := view.Facets(catalog.PostSchema, srv.posts, field)
	srv.writeJSON(w, r, facetsResponse{Field: field, Values: nonNil(values)})
}

// snapshot builds view state from query params.
// An absent sort falls back to dft, an unknown one sorts nothing.
func snapshot[R any](sch *view.Schema[R], query url.Values, dft *nt.Sort) (snap view.Snapshot, err error) {

	snap.Search = query.Get(searchKey)

	dir, err := nt.ParseDirection(query.Get(dirKey))
	if err != nil {
		return
	}

	switch field := query.Get(sortKey); {
	case field != "":
		snap.Sort = &nt.Sort{Field: field, Dir: dir}
	case query.Has(dirKey) && dft != nil:
		snap.Sort = &nt.Sort{Field: dft.Field, Dir: dir}
	default:
		snap.Sort = dft
	}

	snap.Selection = nt.Selection{}
	for _, field := range sch.Facets() {
		if values, ok := query[field.Name]; ok {
			snap.Selection[field.Name] = values
		}
	}

	return
}

func isFacet[R any](sch *view.Schema[R], name string) bool {
	field, ok := sch.Lookup(name)
	return ok && field.Facet
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// writeError writes a JSON error response.
func (srv *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(map[string]string{"error": message})
	if err != nil {
		srv.logger.Error(r.Context(), "failed to encode error response", err, "status", status)
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Headers are sent by then, so encode errors are only logged.
func (srv *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {

	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		srv.logger.Error(r.Context(), "failed to encode response", err, "path", r.URL.Path)
	}
}
