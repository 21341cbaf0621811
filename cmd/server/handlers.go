package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIResponse wraps error payloads.
type APIResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// handleSchema handles GET /schemas/{model}.json, generating the document on
// the fly so it always reflects the current model descriptors.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	modelName, err := parseSchemaPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid path: %v", err))
		return
	}

	model, err := s.registry.GetModel(modelName)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown model: %s", modelName))
		return
	}

	generator, err := s.factory.SchemaGenerator(model)
	if err != nil {
		zap.S().Errorw("generator construction failed", "requestId", requestID, "model", modelName, "error", err)
		writeError(w, http.StatusInternalServerError, "schema generation failed")
		return
	}

	document, err := generator.GetSchema()
	if err != nil {
		zap.S().Errorw("schema generation failed", "requestId", requestID, "model", modelName, "error", err)
		writeError(w, http.StatusInternalServerError, "schema generation failed")
		return
	}

	zap.S().Infow("schema served", "requestId", requestID, "model", modelName)
	writeJSON(w, http.StatusOK, document)
}

// handleListModels handles GET /models.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": s.registry.ListModels()})
}

// parseSchemaPath parses /schemas/{model}.json into the model name.
func parseSchemaPath(path string) (string, error) {
	path = strings.TrimPrefix(path, "/schemas/")
	path = strings.Trim(path, "/")
	if path == "" || strings.Contains(path, "/") {
		return "", fmt.Errorf("expected /schemas/{model}.json")
	}
	name := strings.TrimSuffix(path, ".json")
	if name == "" {
		return "", fmt.Errorf("empty model name")
	}
	return name, nil
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) error {
	return writeJSON(w, statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}
