package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lychee-technology/schemagen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockModelRegistry struct {
	models map[string]*schemagen.Model
}

func (m *mockModelRegistry) GetModel(name string) (*schemagen.Model, error) {
	if model, ok := m.models[name]; ok {
		return model, nil
	}
	return nil, fmt.Errorf("model not found: %s", name)
}

func (m *mockModelRegistry) ListModels() []string {
	names := make([]string, 0, len(m.models))
	for name := range m.models {
		names = append(names, name)
	}
	return names
}

func testServer(t *testing.T) *Server {
	t.Helper()
	registry := &mockModelRegistry{
		models: map[string]*schemagen.Model{
			"user": {
				Name: "user",
				Attributes: map[string]schemagen.Attribute{
					"full_name": {Type: schemagen.TypeString},
				},
			},
		},
	}
	factory, err := schemagen.NewFactory(schemagen.Config{HrefBase: "http://schema.example/"})
	require.NoError(t, err)

	server := NewServer(registry, factory)
	server.RegisterRoutes()
	return server
}

func TestHandleSchema(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/schemas/user.json", nil)
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "User", doc["title"])
	assert.Equal(t, "http://schema.example/user.json", doc["$id"])

	properties := doc["properties"].(map[string]any)
	fullName := properties["full_name"].(map[string]any)
	assert.Equal(t, "string", fullName["type"])
}

func TestHandleSchemaUnknownModel(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/schemas/ghost.json", nil)
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSchemaMethodNotAllowed(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/schemas/user.json", nil)
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleListModels(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/models", nil)
	rec := httptest.NewRecorder()
	server.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	models := body["models"].([]any)
	assert.Equal(t, []any{"user"}, models)
}

func TestParseSchemaPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/schemas/user.json", "user", false},
		{"/schemas/user", "user", false},
		{"/schemas/", "", true},
		{"/schemas/a/b.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := parseSchemaPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSchemaPath(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSchemaPath(%q) returned error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Fatalf("parseSchemaPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
