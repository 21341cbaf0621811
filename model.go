package schemagen

import (
	"sort"
	"strings"
)

// NativeType identifies an attribute's storage-level type as exposed by the
// caller's model layer. Lookups are case-insensitive.
type NativeType string

const (
	TypeString  NativeType = "STRING"
	TypeText    NativeType = "TEXT"
	TypeInteger NativeType = "INTEGER"
	TypeBigInt  NativeType = "BIGINT"
	TypeFloat   NativeType = "FLOAT"
	TypeBoolean NativeType = "BOOLEAN"
	TypeJSON    NativeType = "JSON"
	TypeJSONB   NativeType = "JSONB"
	TypeArray   NativeType = "ARRAY"
	TypeEnum    NativeType = "ENUM"
	TypeDate    NativeType = "DATE"
)

// AssociationType represents the cardinality of an association.
type AssociationType string

const (
	HasOne        AssociationType = "hasOne"
	HasMany       AssociationType = "hasMany"
	BelongsTo     AssociationType = "belongsTo"
	BelongsToMany AssociationType = "belongsToMany"
)

// IsMultiple reports whether the association carries many target rows.
// Spellings are matched case-insensitively.
func (a AssociationType) IsMultiple() bool {
	switch strings.ToLower(string(a)) {
	case "hasmany", "belongstomany":
		return true
	default:
		return false
	}
}

// Attribute describes one native model attribute.
type Attribute struct {
	Type NativeType `json:"type"`
	// Values holds the allowed values for ENUM attributes, in declaration order.
	Values []any `json:"values,omitempty"`
}

// Association links a model to a target model with a given cardinality.
type Association struct {
	Type   AssociationType `json:"associationType"`
	Target *Model          `json:"-"`
}

// Model is the read-only descriptor the generator consumes. Names are
// singular and lower-case by convention.
type Model struct {
	Name         string                 `json:"name"`
	Attributes   map[string]Attribute   `json:"attributes,omitempty"`
	Associations map[string]Association `json:"associations,omitempty"`
}

// Validate checks that the value is a recognizable model.
func (m *Model) Validate() error {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return NewInvalidModelError("model has no entity name")
	}
	return nil
}

// AttributeNames returns the native attribute names in lexicographic order.
func (m *Model) AttributeNames() []string {
	names := make([]string, 0, len(m.Attributes))
	for name := range m.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
