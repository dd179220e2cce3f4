package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktechmidas/data-contract-creator/src/models"
)

func TestImportContract(t *testing.T) {
	t.Run("required string property", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"note":{"type":"object","properties":{"body":{"type":"string"}},"required":["body"],"additionalProperties":false}}`)
		require.NoError(t, err)
		require.Len(t, docTypes, 1)

		docType := docTypes[0]
		assert.Equal(t, "note", docType.Name)
		require.Len(t, docType.Properties, 1)
		assert.Equal(t, "body", docType.Properties[0].Name)
		assert.Equal(t, models.String, docType.Properties[0].DataType)
		assert.True(t, docType.Properties[0].Required)
	})

	t.Run("property order follows source text", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"zebra":{"type":"string"},"apple":{"type":"integer"},"mango":{"type":"boolean"}},"additionalProperties":false}}`)
		require.NoError(t, err)
		require.Len(t, docTypes, 1)

		names := make([]string, 0, 3)
		for _, prop := range docTypes[0].Properties {
			names = append(names, prop.Name)
		}
		assert.Equal(t, []string{"zebra", "apple", "mango"}, names)
	})

	t.Run("optional constraint fields", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"a":{"type":"string","description":"d","minLength":2,"maxLength":8,"pattern":"^a","format":"uri","$comment":"c"}},"additionalProperties":false}}`)
		require.NoError(t, err)

		prop := docTypes[0].Properties[0]
		assert.Equal(t, "d", prop.Description)
		assert.Equal(t, "c", prop.Comment)
		assert.Equal(t, 2, prop.MinLength)
		assert.Equal(t, 8, prop.MaxLength)
		assert.Equal(t, "^a", prop.Pattern)
		assert.Equal(t, "uri", prop.Format)
	})

	t.Run("byteArray false survives import", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"blob":{"type":"array","byteArray":false}},"additionalProperties":false}}`)
		require.NoError(t, err)

		prop := docTypes[0].Properties[0]
		require.NotNil(t, prop.ByteArray)
		assert.False(t, *prop.ByteArray)
	})

	t.Run("document comment", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"a":{"type":"string"}},"additionalProperties":false,"$comment":"hello"}}`)
		require.NoError(t, err)
		assert.Equal(t, "hello", docTypes[0].Comment)
	})

	t.Run("nested object with scoped required", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"meta":{"type":"object","properties":{"label":{"type":"string"},"weight":{"type":"integer"}},"required":["label"],"additionalProperties":false}},"additionalProperties":false}}`)
		require.NoError(t, err)

		meta := docTypes[0].Properties[0]
		require.Equal(t, models.Object, meta.DataType)
		require.Len(t, meta.Properties, 2)
		assert.True(t, meta.Properties[0].Required)
		assert.False(t, meta.Properties[1].Required)
		// The nested required array scopes the children, not the object
		// property itself.
		assert.False(t, meta.Required)
	})

	t.Run("deeply nested objects", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"a":{"type":"object","properties":{"b":{"type":"object","properties":{"c":{"type":"string"}},"required":["c"],"additionalProperties":false}},"additionalProperties":false}},"additionalProperties":false}}`)
		require.NoError(t, err)

		a := docTypes[0].Properties[0]
		require.Len(t, a.Properties, 1)
		b := a.Properties[0]
		require.Len(t, b.Properties, 1)
		assert.Equal(t, "c", b.Properties[0].Name)
		assert.True(t, b.Properties[0].Required)
	})

	t.Run("import replaces the whole model", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"only":{"type":"object","properties":{"a":{"type":"string"}},"additionalProperties":false}}`)
		require.NoError(t, err)
		require.Len(t, docTypes, 1)
		assert.Equal(t, "only", docTypes[0].Name)
	})
}

func TestImportContractErrors(t *testing.T) {
	t.Run("malformed text", func(t *testing.T) {
		_, err := ImportContract(`{"note": [unterminated`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedContract)
	})

	t.Run("non-object document", func(t *testing.T) {
		_, err := ImportContract(`[1,2,3]`)
		assert.ErrorIs(t, err, ErrMalformedContract)
	})

	t.Run("unknown property type", func(t *testing.T) {
		_, err := ImportContract(
			`{"doc":{"type":"object","properties":{"a":{"type":"decimal"}},"additionalProperties":false}}`)
		require.Error(t, err)

		var unknownType *UnknownTypeError
		require.True(t, errors.As(err, &unknownType))
		assert.Equal(t, "decimal", unknownType.TypeName)
		assert.Equal(t, "/doc/properties/a", unknownType.Path)
	})

	t.Run("unknown nested property type reports full path", func(t *testing.T) {
		_, err := ImportContract(
			`{"doc":{"type":"object","properties":{"meta":{"type":"object","properties":{"x":{"type":"blob"}},"additionalProperties":false}},"additionalProperties":false}}`)

		var unknownType *UnknownTypeError
		require.True(t, errors.As(err, &unknownType))
		assert.Equal(t, "/doc/properties/meta/properties/x", unknownType.Path)
	})
}

func TestImportIndices(t *testing.T) {
	t.Run("unique and sort direction", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"body":{"type":"string"}},"indices":[{"name":"byBody","properties":[{"body":"asc"}],"unique":true}],"additionalProperties":false}}`)
		require.NoError(t, err)

		require.Len(t, docTypes[0].Indices, 1)
		index := docTypes[0].Indices[0]
		assert.Equal(t, "byBody", index.Name)
		assert.True(t, index.Unique)
		require.Len(t, index.Properties, 1)
		assert.Equal(t, "body", index.Properties[0].Path)
		assert.Equal(t, models.SortAscending, index.Properties[0].Order)
	})

	t.Run("unique defaults to false", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"body":{"type":"string"}},"indices":[{"name":"byBody","properties":[{"body":"desc"}]}],"additionalProperties":false}}`)
		require.NoError(t, err)
		assert.False(t, docTypes[0].Indices[0].Unique)
	})

	t.Run("last key wins in a multi-key properties entry", func(t *testing.T) {
		docTypes, err := ImportContract(
			`{"doc":{"type":"object","properties":{"a":{"type":"string"},"b":{"type":"string"}},"indices":[{"name":"odd","properties":[{"a":"asc","b":"desc"}]}],"additionalProperties":false}}`)
		require.NoError(t, err)

		index := docTypes[0].Indices[0]
		require.Len(t, index.Properties, 1)
		assert.Equal(t, "b", index.Properties[0].Path)
		assert.Equal(t, models.SortDescending, index.Properties[0].Order)
	})
}

func TestRoundTrip(t *testing.T) {
	byteArray := true
	original := []*models.DocumentType{
		{
			Name: "profile",
			Properties: []*models.Property{
				{Name: "displayName", DataType: models.String, Required: true, MinLength: 1, MaxLength: 25},
				{Name: "avatar", DataType: models.Array, ByteArray: &byteArray, MinItems: 1, MaxItems: 256},
				{Name: "score", DataType: models.Number},
				{
					Name:          "settings",
					DataType:      models.Object,
					MinProperties: 1,
					MaxProperties: 10,
					Properties: []*models.Property{
						{Name: "theme", DataType: models.String, Required: true, Description: "ui theme"},
						{Name: "volume", DataType: models.Integer, Minimum: 1, Maximum: 11},
					},
				},
			},
			Indices: []*models.Index{
				{Name: "byName", Unique: true, Properties: []models.IndexProperty{{Path: "displayName", Order: models.SortAscending}}},
				{Name: "byTheme", Properties: []models.IndexProperty{
					{Path: "settings.theme", Order: models.SortAscending},
					{Path: "displayName", Order: models.SortDescending},
				}},
			},
			Comment: "user profile",
		},
		{
			Name: "note",
			Properties: []*models.Property{
				{Name: "body", DataType: models.String, Required: true},
			},
		},
	}

	compiled := CompileContract(original)
	imported, err := ImportContract(compiled)
	require.NoError(t, err)

	// Compiling the imported model derives its required lists, putting
	// both trees in post-compile form for comparison.
	recompiled := CompileContract(imported)
	assert.Equal(t, compiled, recompiled)
	assert.Equal(t, original, imported)
}
