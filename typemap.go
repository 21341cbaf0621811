package schemagen

import "strings"

// nativeSchemaTypes is the fixed native-type to JSON-Schema primitive table.
var nativeSchemaTypes = map[NativeType]string{
	TypeInteger: "integer",
	TypeBigInt:  "integer",
	TypeFloat:   "number",
	TypeBoolean: "boolean",
	TypeString:  "string",
	TypeText:    "string",
	TypeJSON:    "object",
	TypeJSONB:   "object",
	TypeArray:   "array",
	TypeEnum:    "string",
	TypeDate:    "string",
}

// SchemaType maps a native attribute type to its JSON-Schema primitive name.
// A native type without a table entry fails the whole document: the schema
// cannot be produced without knowing the type.
func SchemaType(t NativeType) (string, error) {
	if mapped, ok := nativeSchemaTypes[NativeType(strings.ToUpper(string(t)))]; ok {
		return mapped, nil
	}
	return "", NewUnknownTypeError(string(t))
}

// isUUIDName reports whether an attribute name falls under the identifier
// convenience rule: attributes literally named "uuid" or suffixed "Uuid" are
// treated as STRING regardless of the model's own metadata.
func isUUIDName(name string) bool {
	return name == "uuid" || strings.HasSuffix(name, "Uuid")
}
