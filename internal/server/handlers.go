package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/laneweave/laneweave/pkg/diagram"
	"github.com/laneweave/laneweave/pkg/diagram/diff"
	"github.com/laneweave/laneweave/pkg/diagram/patch"
	"github.com/laneweave/laneweave/pkg/errors"
	"github.com/laneweave/laneweave/pkg/store"
)

// =============================================================================
// Core Routes
// =============================================================================

type parseRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkSize(req.Code); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diagram.Parse(req.Code))
}

type diffRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	for _, code := range []string{req.Old, req.New} {
		if err := s.checkSize(code); err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, diff.Diff(req.Old, req.New))
}

type patchRequest struct {
	Code       string            `json:"code"`
	Operations []patch.Operation `json:"operations"`
}

type patchResponse struct {
	Code    string           `json:"code"`
	Results []patch.OpResult `json:"results"`
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkSize(req.Code); err != nil {
		s.writeError(w, err)
		return
	}

	patched, results := patch.Apply(req.Code, req.Operations)
	writeJSON(w, http.StatusOK, patchResponse{Code: patched, Results: results})
}

// =============================================================================
// Collaborator Proxies
// =============================================================================

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if s.validate == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnavailable, "validation service not configured"))
		return
	}

	var req parseRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkSize(req.Code); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.validate.Validate(r.Context(), req.Code, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type shareRequest struct {
	Code string `json:"code"`
	View string `json:"view,omitempty"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if s.share == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnavailable, "share service not configured"))
		return
	}

	var req shareRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkSize(req.Code); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.share.Share(r.Context(), req.Code, req.View, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Diagram CRUD
// =============================================================================

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type putDiagramRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (s *Server) handlePutDiagram(w http.ResponseWriter, r *http.Request) {
	var req putDiagramRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.checkSize(req.Code); err != nil {
		s.writeError(w, err)
		return
	}

	d := &store.Diagram{
		ID:   chi.URLParam(r, "id"),
		Name: req.Name,
		Code: req.Code,
	}
	if err := s.store.Put(r.Context(), d); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
