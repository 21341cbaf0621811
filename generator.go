package schemagen

import (
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// SchemaURI is the fixed $schema value of every generated document.
const SchemaURI = "http://json-schema.org/draft-06/schema#"

// Generator produces the JSON-Schema document for one model. Instances are
// bound to a model, a resolved configuration and a property-path root; nested
// generators for inline-embedded associations are spawned through the Factory.
//
// Documents are plain map[string]any trees. Property ordering is realized at
// serialization time: encoding/json emits map keys in lexicographic order, so
// repeated generation yields byte-identical output.
type Generator struct {
	factory      *Factory
	cfg          Config
	model        *Model
	propertyRoot string
	// ancestors holds the model names already on the inline-embedding chain,
	// root first. Revisiting one of them is a configuration error.
	ancestors []string
}

// GetSchema builds the full document for the generator's model: the fixed
// envelope plus the property map from GetProperties.
func (g *Generator) GetSchema(attributeNames ...string) (map[string]any, error) {
	properties, err := g.GetProperties(attributeNames...)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title":      capitalize(g.model.Name),
		"$id":        g.cfg.HrefBase + g.model.Name + ".json",
		"type":       "object",
		"$schema":    SchemaURI,
		"properties": properties,
	}, nil
}

// GetProperties resolves the attribute selection and builds the property map.
// An association match always takes precedence over a native attribute of the
// same name. Virtual properties configured for the model are injected last;
// each property receives its custom-schema fragment by shallow overwrite, and
// enum-bearing properties get their examples recomputed from the enum values.
func (g *Generator) GetProperties(attributeNames ...string) (map[string]any, error) {
	names := attributeNames
	if len(names) == 0 {
		if g.cfg.SelectAttributes != nil {
			names = g.cfg.SelectAttributes(g.model)
		} else {
			names = g.defaultSelection()
		}
	}

	properties := make(map[string]any, len(names))
	for _, name := range names {
		jsonKey, property, err := g.SchemaForAttribute(name)
		if err != nil {
			return nil, err
		}
		g.finishProperty(jsonKey, property)
		properties[jsonKey] = property
	}

	virtuals := g.cfg.virtualsFor(g.model.Name)
	virtualNames := make([]string, 0, len(virtuals))
	for name := range virtuals {
		virtualNames = append(virtualNames, name)
	}
	sort.Strings(virtualNames)
	for _, name := range virtualNames {
		virtual := virtuals[name]
		property, err := g.generatePropertySchema(virtual.Type, name)
		if err != nil {
			return nil, err
		}
		for key, value := range virtual.Extra {
			property[key] = value
		}
		g.finishProperty(name, property)
		properties[name] = property
	}

	return properties, nil
}

// defaultSelection is every native attribute name plus any association keys
// named in the configuration for this model.
func (g *Generator) defaultSelection() []string {
	names := g.model.AttributeNames()
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		seen[name] = struct{}{}
	}
	for _, key := range g.cfg.configuredAssociations(g.model.Name) {
		if _, dup := seen[key]; !dup {
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

// SchemaForAttribute builds the property for one selected name, dispatching
// to association handling first and falling back to a leaf property.
func (g *Generator) SchemaForAttribute(name string) (string, map[string]any, error) {
	jsonKey, property, ok, err := g.AssociationSchema(name)
	if err != nil {
		return "", nil, err
	}
	if ok {
		return jsonKey, property, nil
	}

	nativeType, err := g.DBType(name)
	if err != nil {
		return "", nil, err
	}
	jsonKey = g.JSONAttribute(name)
	property, err = g.generatePropertySchema(nativeType, jsonKey)
	if err != nil {
		return "", nil, err
	}
	if strings.EqualFold(string(nativeType), string(TypeEnum)) {
		if attribute, declared := g.model.Attributes[name]; declared && len(attribute.Values) > 0 {
			property["enum"] = append([]any(nil), attribute.Values...)
		}
	}
	return jsonKey, property, nil
}

// AssociationSchema resolves key through the association mapper. ok=false
// with a nil error means key is not an association of the model and the leaf
// path should be tried instead.
//
// Inline-configured associations embed the target model's full property map
// as an object; everything else becomes a $ref to the target's document.
// Many-valued associations wrap the result as {type: "array", items: ...}.
// The top-level property's $id is always this attribute's own path, whatever
// the recursion produced inside.
func (g *Generator) AssociationSchema(key string) (string, map[string]any, bool, error) {
	nativeName, jsonKey, ok := g.mapAssociation(key)
	if !ok {
		return "", nil, false, nil
	}
	association, declared := g.model.Associations[nativeName]
	if !declared {
		return "", nil, false, nil
	}
	if association.Target == nil {
		err := NewInvalidModelError("association has no target model").
			WithModel(g.model.Name).WithField(nativeName)
		return "", nil, false, err
	}

	id := g.AttributeID(jsonKey)
	var inner map[string]any
	if g.cfg.inlined(g.model.Name, jsonKey) {
		child, err := g.inlineGenerator(association.Target, id)
		if err != nil {
			return "", nil, false, err
		}
		childProperties, err := child.GetProperties()
		if err != nil {
			return "", nil, false, err
		}
		inner = map[string]any{
			"$id":        id,
			"type":       "object",
			"properties": childProperties,
		}
	} else {
		inner = map[string]any{
			"$id":  id,
			"$ref": g.cfg.HrefBase + association.Target.Name + ".json",
		}
	}

	property := inner
	if association.Type.IsMultiple() {
		property = map[string]any{"type": "array", "items": inner}
	}
	property["$id"] = id
	return jsonKey, property, true, nil
}

// mapAssociation applies the configured association mapper, defaulting to
// "declared under exactly this name".
func (g *Generator) mapAssociation(key string) (nativeName, jsonKey string, ok bool) {
	if g.cfg.JSONAssociationMapper != nil {
		return g.cfg.JSONAssociationMapper(g.model, key)
	}
	if _, declared := g.model.Associations[key]; declared {
		return key, key, true
	}
	return "", "", false
}

// inlineGenerator spawns the nested generator for an inline-embedded target,
// guarding against embedding cycles and unbounded depth.
func (g *Generator) inlineGenerator(target *Model, propertyRoot string) (*Generator, error) {
	path := make([]string, 0, len(g.ancestors)+2)
	path = append(path, g.ancestors...)
	path = append(path, g.model.Name)
	for _, visited := range path {
		if visited == target.Name {
			return nil, NewCyclicInlineAssociationError(append(path, target.Name))
		}
	}
	if len(path) >= g.cfg.MaxInlineDepth {
		return nil, NewCyclicInlineAssociationError(append(path, target.Name))
	}
	return g.factory.generator(target, propertyRoot, path)
}

// JSONAttribute returns the JSON key for a native attribute name; identity
// unless an attribute mapper is configured.
func (g *Generator) JSONAttribute(name string) string {
	if g.cfg.JSONAttributeMapper != nil {
		return g.cfg.JSONAttributeMapper(g.model, name)
	}
	return name
}

// DBType returns the native type for an attribute. Identifier-shaped names
// ("uuid", "*Uuid") are forced to STRING before the model's own metadata is
// consulted.
func (g *Generator) DBType(name string) (NativeType, error) {
	if isUUIDName(name) {
		return TypeString, nil
	}
	if attribute, declared := g.model.Attributes[name]; declared {
		return attribute.Type, nil
	}
	return "", NewUnknownAttributeError(g.model.Name, name)
}

// AttributeID returns the $id path of a property at this generator's nesting
// level: propertyRoot + "/properties/" + jsonKey.
func (g *Generator) AttributeID(jsonKey string) string {
	return g.propertyRoot + "/properties/" + jsonKey
}

// Model returns the model this generator is bound to.
func (g *Generator) Model() *Model {
	return g.model
}

// generatePropertySchema is the shared leaf builder used for ordinary
// attributes and virtual properties alike.
func (g *Generator) generatePropertySchema(nativeType NativeType, jsonKey string) (map[string]any, error) {
	schemaType, err := SchemaType(nativeType)
	if err != nil {
		if se, ok := err.(*SchemaError); ok {
			se.WithModel(g.model.Name).WithField(jsonKey)
		}
		return nil, err
	}
	return map[string]any{
		"$id":      g.AttributeID(jsonKey),
		"type":     schemaType,
		"title":    humanTitle(jsonKey),
		"examples": []any{},
	}, nil
}

// finishProperty applies the custom-schema fragment for (model, jsonKey) by
// shallow overwrite, then recomputes examples for enum-bearing properties as
// the deduplicated union of pre-existing examples and the enum values.
func (g *Generator) finishProperty(jsonKey string, property map[string]any) {
	for key, value := range g.cfg.customFor(g.model.Name, jsonKey) {
		property[key] = value
	}
	if enum := anySlice(property["enum"]); enum != nil {
		property["examples"] = unionValues(anySlice(property["examples"]), enum)
	}
}

// unionValues appends values not already present, deduplicating the result.
func unionValues(existing, extra []any) []any {
	out := make([]any, 0, len(existing)+len(extra))
	for _, value := range existing {
		if !containsValue(out, value) {
			out = append(out, value)
		}
	}
	for _, value := range extra {
		if !containsValue(out, value) {
			out = append(out, value)
		}
	}
	return out
}

func containsValue(values []any, candidate any) bool {
	for _, value := range values {
		if reflect.DeepEqual(value, candidate) {
			return true
		}
	}
	return false
}

// anySlice normalizes the slice shapes a property value can legitimately
// carry after custom merges.
func anySlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

// capitalize upper-cases the first rune; model titles are the capitalized
// singular model name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// humanTitle derives a property title from its JSON key: split on
// underscores and camelCase boundaries, lower-case the words, capitalize the
// first letter ("fullName" and "full_name" both become "Full name").
func humanTitle(jsonKey string) string {
	var b strings.Builder
	for i, r := range jsonKey {
		switch {
		case r == '_' || r == '-' || r == ' ':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	joined := strings.Join(strings.Fields(b.String()), " ")
	return capitalize(joined)
}
