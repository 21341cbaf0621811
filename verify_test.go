package schemagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifierFixture(t *testing.T) (*Generator, *Verifier) {
	t.Helper()
	model := simpleUserModel()
	model.Associations = map[string]Association{
		"profile": {Type: HasOne, Target: profileModel()},
	}
	cfg := Config{
		HrefBase: "http://schema.example/",
		Associations: map[string]map[string]AssociationMode{
			"user": {"profile": AssociationReference},
		},
		VirtualProperties: map[string]map[string]VirtualProperty{
			"user": {"age": {Type: TypeInteger}},
		},
	}
	gen := newGenerator(t, cfg, model)
	return gen, NewVerifier(gen)
}

func TestVerifyPayloadKeys(t *testing.T) {
	_, verifier := verifierFixture(t)

	err := verifier.VerifyPayloadKeys(map[string]any{
		"full_name": "Ada",
		"status":    "REAL",
		"profile":   map[string]any{"bio": "n/a"},
		"age":       42,
	})
	assert.NoError(t, err)

	err = verifier.VerifyPayloadKeys(map[string]any{
		"full_name": "Ada",
		"nickname":  "ada",
		"shoe_size": 38,
	})
	require.Error(t, err)

	verrs, ok := err.(*VerificationErrors)
	require.True(t, ok)
	assert.Len(t, verrs.Errors, 2, "all unknown keys reported together")
}

func TestVerifyAttributes(t *testing.T) {
	gen, verifier := verifierFixture(t)

	doc, err := gen.GetSchema()
	require.NoError(t, err)

	assert.NoError(t, verifier.VerifyAttributes(doc, "full_name", "status"))

	// Corrupt one $id and drop another property entirely.
	properties := doc["properties"].(map[string]any)
	properties["full_name"].(map[string]any)["$id"] = "/properties/wrong"
	delete(properties, "status")

	err = verifier.VerifyAttributes(doc, "full_name", "status")
	require.Error(t, err)
	verrs := err.(*VerificationErrors)
	assert.Len(t, verrs.Errors, 2)
}

func TestVerifyAssociations(t *testing.T) {
	gen, verifier := verifierFixture(t)

	doc, err := gen.GetSchema()
	require.NoError(t, err)

	assert.NoError(t, verifier.VerifyAssociations(doc, "profile"))

	properties := doc["properties"].(map[string]any)
	properties["profile"].(map[string]any)["$ref"] = "http://schema.example/other.json"
	err = verifier.VerifyAssociations(doc, "profile")
	require.Error(t, err)

	err = verifier.VerifyAssociations(doc, "full_name")
	require.Error(t, err, "non-associations are reported, not silently skipped")
}

func TestVerifyRequiredFieldsAggregatesGaps(t *testing.T) {
	gen, verifier := verifierFixture(t)

	doc, err := gen.GetSchema()
	require.NoError(t, err)

	// Generated leaves lack description, so with the default field set every
	// non-association property reports exactly one gap.
	err = verifier.VerifyRequiredFields(doc)
	require.Error(t, err)
	verrs := err.(*VerificationErrors)
	assert.Len(t, verrs.Errors, 3) // full_name, status, age
	for _, gap := range verrs.Errors {
		assert.Equal(t, "description", gap.Field)
	}

	// A caller-supplied field set replaces the default.
	assert.NoError(t, verifier.VerifyRequiredFields(doc, "$id", "type", "title", "examples"))
}

func TestVerifyRequiredFieldsSkipsAssociationShapes(t *testing.T) {
	model := simpleUserModel()
	model.Associations = map[string]Association{
		"address": {Type: HasMany, Target: addressModel()},
		"profile": {Type: HasOne, Target: profileModel()},
	}
	cfg := Config{
		HrefBase: "http://schema.example/",
		Associations: map[string]map[string]AssociationMode{
			"user": {
				"address": AssociationInline,
				"profile": AssociationReference,
			},
		},
	}
	gen := newGenerator(t, cfg, model)
	verifier := NewVerifier(gen)

	doc, err := gen.GetSchema()
	require.NoError(t, err)

	err = verifier.VerifyRequiredFields(doc, "description")
	require.Error(t, err)
	verrs := err.(*VerificationErrors)
	for _, gap := range verrs.Errors {
		assert.NotEqual(t, "address", gap.Property)
		assert.NotEqual(t, "profile", gap.Property)
	}
}

func TestVerifyExample(t *testing.T) {
	gen, verifier := verifierFixture(t)

	doc, err := gen.GetSchema()
	require.NoError(t, err)

	err = verifier.VerifyExample(doc, map[string]any{
		"full_name": "Ada Lovelace",
		"status":    "REAL",
	})
	assert.NoError(t, err)

	err = verifier.VerifyExample(doc, map[string]any{
		"full_name": 42,
	})
	assert.Error(t, err, "type mismatch must fail validation")

	err = verifier.VerifyExample(doc, map[string]any{
		"status": "UNDECIDED",
	})
	assert.Error(t, err, "value outside the enum must fail validation")
}
