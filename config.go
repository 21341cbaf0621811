package schemagen

import (
	"sort"
	"strings"
)

// AssociationMode selects how an association property is rendered.
type AssociationMode string

const (
	// AssociationInline embeds the target model's full property schema as a
	// nested object.
	AssociationInline AssociationMode = "inline"
	// AssociationReference emits a $ref pointing at the target model's own
	// schema document. Any value other than AssociationInline behaves as a
	// reference.
	AssociationReference AssociationMode = "reference"
)

// AttributeMapper renames a native attribute to its JSON key.
type AttributeMapper func(model *Model, name string) string

// AssociationMapper detects and renames associations. It must report ok=false
// when key is not an association of model.
type AssociationMapper func(model *Model, key string) (nativeName, jsonKey string, ok bool)

// AttributeSelector returns the attribute and association names a document
// should include for a model.
type AttributeSelector func(model *Model) []string

// VirtualProperty describes a computed property that has no native attribute
// behind it. Extra fields are shallow-merged onto the generated leaf schema.
type VirtualProperty struct {
	Type  NativeType     `json:"type"`
	Extra map[string]any `json:"extra,omitempty"`
}

// defaultMaxInlineDepth bounds inline-embedding recursion driven by hooks
// that the visited-model-path check cannot see through.
const defaultMaxInlineDepth = 32

// Config carries the shared schema-generation settings held by a Factory.
// The zero value is not usable: HrefBase is required.
type Config struct {
	// HrefBase is the URL prefix for $id and $ref values. A trailing slash is
	// ensured at Factory construction; the caller's value is never mutated.
	HrefBase string `json:"hrefBase"`

	// CustomSchema maps model name -> JSON key -> partial schema fragment,
	// shallow-merged (fragment keys win) onto the generated property.
	CustomSchema map[string]map[string]map[string]any `json:"customSchema,omitempty"`

	// VirtualProperties maps model name -> property name -> definition for
	// computed properties injected after the model's own attributes.
	VirtualProperties map[string]map[string]VirtualProperty `json:"virtualProperties,omitempty"`

	// Associations maps model name -> association JSON key -> rendering mode.
	// Naming an association here also adds it to the default selection.
	Associations map[string]map[string]AssociationMode `json:"associations,omitempty"`

	// JSONAttributeMapper renames attributes; identity when nil.
	JSONAttributeMapper AttributeMapper `json:"-"`

	// JSONAssociationMapper detects and renames associations; when nil, a key
	// is an association exactly when the model declares it under that name.
	JSONAssociationMapper AssociationMapper `json:"-"`

	// SelectAttributes overrides the default "all native attributes plus
	// configured associations" selection.
	SelectAttributes AttributeSelector `json:"-"`

	// MaxInlineDepth bounds inline recursion; defaults to 32 when <= 0.
	MaxInlineDepth int `json:"maxInlineDepth,omitempty"`
}

// normalized returns a resolved copy with defaults applied. The receiver is
// left untouched so callers can reuse their own Config value.
func (c Config) normalized() (Config, error) {
	if strings.TrimSpace(c.HrefBase) == "" {
		return Config{}, NewMissingConfigError("hrefBase", "hrefBase is required and must be a non-empty string")
	}
	if !strings.HasSuffix(c.HrefBase, "/") {
		c.HrefBase += "/"
	}
	if c.MaxInlineDepth <= 0 {
		c.MaxInlineDepth = defaultMaxInlineDepth
	}
	return c, nil
}

// customFor returns the custom-schema fragment for one property, nil if none.
func (c Config) customFor(model, jsonKey string) map[string]any {
	return c.CustomSchema[model][jsonKey]
}

// virtualsFor returns the virtual properties configured for a model.
func (c Config) virtualsFor(model string) map[string]VirtualProperty {
	return c.VirtualProperties[model]
}

// inlined reports whether an association is configured for inline embedding.
func (c Config) inlined(model, jsonKey string) bool {
	return c.Associations[model][jsonKey] == AssociationInline
}

// configuredAssociations returns the association keys named in the
// configuration for a model, in lexicographic order.
func (c Config) configuredAssociations(model string) []string {
	modes := c.Associations[model]
	if len(modes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(modes))
	for key := range modes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
