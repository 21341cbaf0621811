package internal

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lychee-technology/schemagen"
)

// ModelRegistry provides model-descriptor lookup operations.
type ModelRegistry interface {
	// GetModel retrieves a model descriptor by name.
	GetModel(name string) (*schemagen.Model, error)
	// ListModels returns all registered model names in lexicographic order.
	ListModels() []string
}

// modelFile is the on-disk shape of one model descriptor. Association targets
// are referenced by model name and resolved into pointers after all files in
// the directory have been read, so mutually-referencing models load fine.
type modelFile struct {
	Name         string                         `json:"name"`
	Attributes   map[string]schemagen.Attribute `json:"attributes"`
	Associations map[string]associationFile     `json:"associations"`
}

type associationFile struct {
	AssociationType schemagen.AssociationType `json:"associationType"`
	Target          string                    `json:"target"`
}

type fileModelRegistry struct {
	mu     sync.RWMutex
	dir    string
	models map[string]*schemagen.Model
}

// NewFileModelRegistry loads every <model>.json descriptor from dir. Files
// are read in lexicographic order; loaded models are treated as immutable.
func NewFileModelRegistry(dir string) (ModelRegistry, error) {
	registry := &fileModelRegistry{
		dir:    dir,
		models: make(map[string]*schemagen.Model),
	}
	if err := registry.loadModels(); err != nil {
		return nil, err
	}
	return registry, nil
}

func (r *fileModelRegistry) loadModels() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("failed to read model directory: %w", err)
	}

	var modelFiles []fs.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			modelFiles = append(modelFiles, entry)
		}
	}
	sort.Slice(modelFiles, func(i, j int) bool {
		return modelFiles[i].Name() < modelFiles[j].Name()
	})

	// First pass: parse every file and register the bare models.
	parsed := make(map[string]modelFile, len(modelFiles))
	for _, entry := range modelFiles {
		path := filepath.Join(r.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read model file %s: %w", path, err)
		}

		var file modelFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse model file %s: %w", path, err)
		}
		if file.Name == "" {
			file.Name = strings.TrimSuffix(entry.Name(), ".json")
		}
		if _, dup := parsed[file.Name]; dup {
			return fmt.Errorf("duplicate model name %q in %s", file.Name, path)
		}

		parsed[file.Name] = file
		r.models[file.Name] = &schemagen.Model{
			Name:       file.Name,
			Attributes: file.Attributes,
		}
	}

	// Second pass: resolve association targets into model pointers.
	for name, file := range parsed {
		if len(file.Associations) == 0 {
			continue
		}
		associations := make(map[string]schemagen.Association, len(file.Associations))
		for assocName, assoc := range file.Associations {
			target, ok := r.models[assoc.Target]
			if !ok {
				return fmt.Errorf("model %q: association %q targets unknown model %q",
					name, assocName, assoc.Target)
			}
			associations[assocName] = schemagen.Association{
				Type:   assoc.AssociationType,
				Target: target,
			}
		}
		r.models[name].Associations = associations
	}

	if len(r.models) == 0 {
		return fmt.Errorf("no model files found in directory: %s", r.dir)
	}
	return nil
}

// GetModel retrieves a model descriptor by name.
func (r *fileModelRegistry) GetModel(name string) (*schemagen.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, exists := r.models[name]
	if !exists {
		return nil, fmt.Errorf("model not found: %s", name)
	}
	return model, nil
}

// ListModels returns all registered model names in lexicographic order.
func (r *fileModelRegistry) ListModels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
