package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sajjad-MoBe/slotstore/internal/deployment"
	slotErr "github.com/sajjad-MoBe/slotstore/internal/errors"
)

// maxBodyBytes bounds the size of a save request body
const maxBodyBytes = 1 << 20

// SaveResponse is returned by the save route of both deployments
type SaveResponse struct {
	Message string `json:"message"`
}

// handleSave handles POST /save (message) and POST /post (name)
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	field, err := s.decodeField(r)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := s.deployment.Validate(field); err != nil {
		handleError(w, err)
		return
	}

	var message string
	s.tracer.TraceSlotOperation(r.Context(), "save", func(context.Context) {
		message = s.deployment.Save(field)
	})
	s.metrics.RecordOperation("save")

	s.V(1).Info("saved value",
		"deployment", s.deployment.Kind(),
		"absent", field == nil,
		"request_id", RequestIDFromContext(r.Context()))

	writeJSON(w, http.StatusOK, SaveResponse{Message: message})
}

// handleRead handles GET /read (message) and GET /get (name)
func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	var value string
	s.tracer.TraceSlotOperation(r.Context(), "read", func(context.Context) {
		value = s.deployment.Read()
	})
	s.metrics.RecordOperation("read")

	writeJSON(w, http.StatusOK, map[string]string{
		s.routes.ReadField: value,
	})
}

// decodeField extracts the deployment's field from a JSON object body. An
// absent or null field yields nil.
func (s *Server) decodeField(r *http.Request) (*string, error) {
	dec := json.NewDecoder(r.Body)
	var body map[string]json.RawMessage
	if err := dec.Decode(&body); err != nil {
		return nil, s.bodyError("invalid request body", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, s.bodyError("invalid request body", errors.New("unexpected data after JSON object"))
	}
	if body == nil {
		return nil, s.bodyError("request body must be a JSON object", nil)
	}

	raw, ok := body[s.routes.Field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var field string
	if err := json.Unmarshal(raw, &field); err != nil {
		return nil, s.bodyError("field "+s.routes.Field+" must be a string", err)
	}
	return &field, nil
}

// bodyError classifies an unreadable body: the message deployment treats
// it as a schema violation, the name deployment as a bad request.
func (s *Server) bodyError(message string, err error) error {
	if s.deployment.Kind() == deployment.KindMessage {
		return slotErr.New(slotErr.ErrorTypeValidation, message, err)
	}
	return slotErr.New(slotErr.ErrorTypeInvalidInput, message, err)
}
