package server

import (
	"encoding/json"
	"net/http"

	"github.com/laneweave/laneweave/pkg/errors"
)

// errorBody is the JSON error envelope every failing route returns.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error's code to an HTTP status and writes the envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOperation, errors.ErrCodeInvalidView:
		status = http.StatusBadRequest
	case errors.ErrCodeDiagramTooLarge:
		status = http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound, errors.ErrCodeDiagramNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout, errors.ErrCodeUnavailable:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, body)
}

// decodeBody decodes a JSON request body into v with a size cap slightly
// above the diagram ceiling so oversize diagrams fail with the structured
// error rather than a connection reset.
func (s *Server) decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, int64(s.maxBytes)*4+4096))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body")
	}
	return nil
}

// checkSize enforces the diagram-text ceiling at the boundary.
func (s *Server) checkSize(code string) error {
	if len(code) > s.maxBytes {
		return errors.New(errors.ErrCodeDiagramTooLarge,
			"diagram is %d characters; the limit is %d", len(code), s.maxBytes)
	}
	return nil
}
