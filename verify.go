package schemagen

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultRequiredPropertyFields is the field set VerifyRequiredFields audits
// when the caller does not supply its own.
var DefaultRequiredPropertyFields = []string{"$id", "description", "examples", "title", "type"}

// Verifier asserts that generated documents conform to the model and
// configuration a Generator was built from. It is meant for the host
// application's own test suite: its checks mirror the property-construction
// rules of GetProperties, so drift between the two surfaces as a failure.
type Verifier struct {
	gen *Generator
}

// NewVerifier returns a Verifier for one generator.
func NewVerifier(gen *Generator) *Verifier {
	return &Verifier{gen: gen}
}

// VerifyPayloadKeys checks that every key of a sample payload maps to a known
// attribute, association, or virtual property of the model, honoring the
// configured attribute and association mappers. Unknown keys are aggregated
// into one error.
func (v *Verifier) VerifyPayloadKeys(payload map[string]any) error {
	known := v.knownKeys()
	verrs := NewVerificationErrors()
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			verrs.Add(key, "", "does not map to any attribute, association or virtual property of model '"+v.gen.Model().Name+"'")
		}
	}
	return verrs.ToError()
}

// knownKeys collects every JSON key the generator could legitimately emit.
func (v *Verifier) knownKeys() map[string]struct{} {
	model := v.gen.Model()
	known := make(map[string]struct{})
	for name := range model.Attributes {
		known[v.gen.JSONAttribute(name)] = struct{}{}
	}
	for name := range model.Associations {
		if _, jsonKey, ok := v.gen.mapAssociation(name); ok {
			known[jsonKey] = struct{}{}
		}
	}
	for name := range v.gen.cfg.virtualsFor(model.Name) {
		known[name] = struct{}{}
	}
	return known
}

// VerifyAssociations checks that each named association appears in the
// document with exactly the structure GetProperties would produce for it.
func (v *Verifier) VerifyAssociations(doc map[string]any, names ...string) error {
	properties := documentProperties(doc)
	verrs := NewVerificationErrors()
	for _, name := range names {
		jsonKey, want, ok, err := v.gen.AssociationSchema(name)
		if err != nil {
			return err
		}
		if !ok {
			verrs.Add(name, "", "is not an association of model '"+v.gen.Model().Name+"'")
			continue
		}
		v.gen.finishProperty(jsonKey, want)
		got, present := properties[jsonKey]
		if !present {
			verrs.Add(jsonKey, "", "association missing from document properties")
			continue
		}
		if !reflect.DeepEqual(got, want) {
			verrs.Add(jsonKey, "", "association structure differs from generated form")
		}
	}
	return verrs.ToError()
}

// VerifyAttributes checks that each named attribute is present in the
// document with the exact $id its nesting level demands.
func (v *Verifier) VerifyAttributes(doc map[string]any, names ...string) error {
	properties := documentProperties(doc)
	verrs := NewVerificationErrors()
	for _, name := range names {
		jsonKey := v.gen.JSONAttribute(name)
		property, ok := properties[jsonKey].(map[string]any)
		if !ok {
			verrs.Add(jsonKey, "", "attribute missing from document properties")
			continue
		}
		wantID := v.gen.AttributeID(jsonKey)
		if property["$id"] != wantID {
			verrs.Add(jsonKey, "$id", fmt.Sprintf("is %v, want %q", property["$id"], wantID))
		}
	}
	return verrs.ToError()
}

// VerifyRequiredFields audits every top-level property for the required
// field set, skipping reference- and association-shaped properties. Every
// gap is collected and reported together rather than failing on the first.
func (v *Verifier) VerifyRequiredFields(doc map[string]any, required ...string) error {
	if len(required) == 0 {
		required = DefaultRequiredPropertyFields
	}
	properties := documentProperties(doc)
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	verrs := NewVerificationErrors()
	for _, key := range keys {
		property, ok := properties[key].(map[string]any)
		if !ok {
			verrs.Add(key, "", "property is not an object schema")
			continue
		}
		if isAssociationShaped(property) {
			continue
		}
		for _, field := range required {
			if _, present := property[field]; !present {
				verrs.Add(key, field, "is missing")
			}
		}
	}
	return verrs.ToError()
}

// VerifyExample validates a sample payload against a generated document by
// resolving it through the jsonschema package. The document is sanitized
// first: external $ref subtrees become permissive schemas (this library never
// fetches linked documents), and $id/$schema markers are dropped so the
// resolver does not chase or re-register them.
func (v *Verifier) VerifyExample(doc map[string]any, payload any) error {
	pruned := sanitizeForValidation(doc)
	raw, err := json.Marshal(pruned)
	if err != nil {
		return fmt.Errorf("marshal schema for validation: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return fmt.Errorf("unmarshal into jsonschema.Schema: %w", err)
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return fmt.Errorf("resolve JSON schema: %w", err)
	}
	if err := resolved.Validate(payload); err != nil {
		return fmt.Errorf("payload validation failed: %w", err)
	}
	return nil
}

// documentProperties extracts the properties map of a document, tolerating a
// bare property map being passed instead of a full document.
func documentProperties(doc map[string]any) map[string]any {
	if properties, ok := doc["properties"].(map[string]any); ok {
		return properties
	}
	return doc
}

// isAssociationShaped reports whether a property renders an association:
// a $ref, an inline object carrying its own properties, or an array of either.
func isAssociationShaped(property map[string]any) bool {
	if _, ok := property["$ref"]; ok {
		return true
	}
	if _, ok := property["properties"]; ok {
		return true
	}
	if items, ok := property["items"].(map[string]any); ok {
		return isAssociationShaped(items)
	}
	return false
}

// sanitizeForValidation returns a copy of node with every $ref-bearing object
// replaced by an unconstrained empty schema and all $id/$schema markers
// removed.
func sanitizeForValidation(node any) any {
	switch v := node.(type) {
	case map[string]any:
		if _, ok := v["$ref"]; ok {
			return map[string]any{}
		}
		out := make(map[string]any, len(v))
		for key, value := range v {
			if key == "$id" || key == "$schema" {
				continue
			}
			out[key] = sanitizeForValidation(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeForValidation(item)
		}
		return out
	default:
		return node
	}
}
