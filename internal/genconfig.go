package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lychee-technology/schemagen"
)

// generationConfigFile is the on-disk shape of a generation configuration.
// Hook functions (attribute/association mappers, selectors) are code-level
// configuration and cannot be expressed in the file.
type generationConfigFile struct {
	HrefBase          string                                           `json:"hrefBase"`
	Associations      map[string]map[string]schemagen.AssociationMode `json:"associations,omitempty"`
	CustomSchema      map[string]map[string]map[string]any             `json:"customSchema,omitempty"`
	VirtualProperties map[string]map[string]schemagen.VirtualProperty `json:"virtualProperties,omitempty"`
	MaxInlineDepth    int                                              `json:"maxInlineDepth,omitempty"`
}

// LoadGenerationConfig reads a JSON generation-configuration file into a
// schemagen.Config. An empty path yields a config with only hrefBase set.
func LoadGenerationConfig(path, hrefBase string) (schemagen.Config, error) {
	cfg := schemagen.Config{HrefBase: hrefBase}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return schemagen.Config{}, fmt.Errorf("read config file: %w", err)
	}

	var file generationConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return schemagen.Config{}, fmt.Errorf("parse config file: %w", err)
	}

	if file.HrefBase != "" {
		cfg.HrefBase = file.HrefBase
	}
	cfg.Associations = file.Associations
	cfg.CustomSchema = file.CustomSchema
	cfg.VirtualProperties = file.VirtualProperties
	cfg.MaxInlineDepth = file.MaxInlineDepth
	return cfg, nil
}
