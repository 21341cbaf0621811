package schemagen

import "testing"

func TestSchemaType(t *testing.T) {
	tests := []struct {
		name     string
		native   NativeType
		expected string
	}{
		{"integer", TypeInteger, "integer"},
		{"bigint", TypeBigInt, "integer"},
		{"float", TypeFloat, "number"},
		{"boolean", TypeBoolean, "boolean"},
		{"string", TypeString, "string"},
		{"text", TypeText, "string"},
		{"json", TypeJSON, "object"},
		{"jsonb", TypeJSONB, "object"},
		{"array", TypeArray, "array"},
		{"enum", TypeEnum, "string"},
		{"date", TypeDate, "string"},
		{"case-insensitive", NativeType("string"), "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SchemaType(tt.native)
			if err != nil {
				t.Fatalf("SchemaType(%s) returned error: %v", tt.native, err)
			}
			if got != tt.expected {
				t.Fatalf("SchemaType(%s) = %s, want %s", tt.native, got, tt.expected)
			}
		})
	}
}

func TestSchemaTypeUnknown(t *testing.T) {
	_, err := SchemaType(NativeType("GEOMETRY"))
	if err == nil {
		t.Fatal("expected error for unmapped native type")
	}
	if !IsUnknownTypeError(err) {
		t.Fatalf("expected unknown-type error, got %v", err)
	}
}

func TestIsUUIDName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"uuid", true},
		{"ownerUuid", true},
		{"accountUuid", true},
		{"uuid_value", false},
		{"UUID", false},
		{"owner_uuid", false},
		{"full_name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUUIDName(tt.name); got != tt.want {
				t.Fatalf("isUUIDName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestAssociationTypeIsMultiple(t *testing.T) {
	tests := []struct {
		name  string
		assoc AssociationType
		want  bool
	}{
		{"hasOne", HasOne, false},
		{"belongsTo", BelongsTo, false},
		{"hasMany", HasMany, true},
		{"belongsToMany", BelongsToMany, true},
		{"case-insensitive hasmany", AssociationType("HASMANY"), true},
		{"case-insensitive BelongsToMany", AssociationType("belongstomany"), true},
		{"unknown", AssociationType("linkedTo"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.assoc.IsMultiple(); got != tt.want {
				t.Fatalf("IsMultiple() = %v, want %v", got, tt.want)
			}
		})
	}
}
