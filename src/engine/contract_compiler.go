package engine

import (
	"encoding/json"
	"strings"

	"github.com/ktechmidas/data-contract-creator/src/models"
)

// Fragment is the compiled form of a single document type: the JSON text
// `"<name>":{...}` ready to be joined into the full contract document.
type Fragment struct {
	Name string
	JSON string
}

// DeriveRequired returns the names of the properties whose Required flag
// is set, in property order. The result is assigned to the owning
// collection's required list during compilation so that the list always
// reflects the current flags of its direct children.
func DeriveRequired(props []*models.Property) []string {
	var required []string
	for _, prop := range props {
		if prop.Required {
			required = append(required, prop.Name)
		}
	}
	return required
}

// Compile compiles every document type into its canonical fragment,
// in order. Compilation is total for well-formed value models and
// idempotent: recompiling an unchanged tree yields byte-identical output.
func Compile(docTypes []*models.DocumentType) []Fragment {
	fragments := make([]Fragment, 0, len(docTypes))
	for _, docType := range docTypes {
		fragments = append(fragments, CompileDocumentType(docType))
	}
	return fragments
}

// CompileContract compiles the document types and joins the fragments
// into the full canonical contract document. This text is what the
// validation adapter consumes.
func CompileContract(docTypes []*models.DocumentType) string {
	fragments := Compile(docTypes)
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		parts = append(parts, fragment.JSON)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// CompileDocumentType emits the canonical schema object for one document
// type. As a side effect the document type's Required list is rederived
// from its properties' Required flags.
func CompileDocumentType(docType *models.DocumentType) Fragment {
	propsMap := newJSONObject()
	for _, prop := range docType.Properties {
		propsMap.Set(prop.Name, compileProperty(prop))
	}
	docType.Required = DeriveRequired(docType.Properties)

	docObj := newJSONObject()
	docObj.Set("type", "object")
	docObj.Set("properties", propsMap)
	if len(docType.Indices) > 0 {
		indicesArr := make([]interface{}, 0, len(docType.Indices))
		for _, index := range docType.Indices {
			indicesArr = append(indicesArr, compileIndex(index))
		}
		docObj.Set("indices", indicesArr)
	}
	if len(docType.Required) > 0 {
		docObj.Set("required", docType.Required)
	}
	docObj.Set("additionalProperties", false)
	if docType.Comment != "" {
		docObj.Set("$comment", docType.Comment)
	}

	// Marshalling compiler-built values cannot fail; the object tree
	// contains only strings, ints, bools and nested jsonObjects.
	nameJSON, _ := json.Marshal(docType.Name)
	objJSON, _ := json.Marshal(docObj)

	return Fragment{
		Name: docType.Name,
		JSON: string(nameJSON) + ":" + string(objJSON),
	}
}

// compileProperty emits the property-schema object for a single property.
// Optional fields are omitted when they hold the type's zero value: an
// explicit minLength of 0 compiles identically to an unset one. That
// conflation is a known limitation of the canonical encoding and is kept
// for compatibility with existing contracts.
func compileProperty(prop *models.Property) *jsonObject {
	propObj := newJSONObject()
	propObj.Set("type", prop.DataType.String())
	if prop.Description != "" {
		propObj.Set("description", prop.Description)
	}
	if prop.MinLength > 0 {
		propObj.Set("minLength", prop.MinLength)
	}
	if prop.MaxLength > 0 {
		propObj.Set("maxLength", prop.MaxLength)
	}
	if prop.Pattern != "" {
		propObj.Set("pattern", prop.Pattern)
	}
	if prop.Format != "" {
		propObj.Set("format", prop.Format)
	}
	if prop.Minimum > 0 {
		propObj.Set("minimum", prop.Minimum)
	}
	if prop.Maximum > 0 {
		propObj.Set("maximum", prop.Maximum)
	}
	// byteArray keeps an explicit false, unlike the other optionals.
	if prop.ByteArray != nil {
		propObj.Set("byteArray", *prop.ByteArray)
	}
	if prop.MinItems > 0 {
		propObj.Set("minItems", prop.MinItems)
	}
	if prop.MaxItems > 0 {
		propObj.Set("maxItems", prop.MaxItems)
	}
	if prop.DataType == models.Object {
		nestedMap := newJSONObject()
		for _, nested := range prop.Properties {
			nestedMap.Set(nested.Name, compileProperty(nested))
		}
		propObj.Set("properties", nestedMap)
	}
	if prop.MinProperties > 0 {
		propObj.Set("minProperties", prop.MinProperties)
	}
	if prop.MaxProperties > 0 {
		propObj.Set("maxProperties", prop.MaxProperties)
	}
	if prop.DataType == models.Object {
		prop.ChildRequired = DeriveRequired(prop.Properties)
		if len(prop.ChildRequired) > 0 {
			propObj.Set("required", prop.ChildRequired)
		}
		propObj.Set("additionalProperties", false)
	}
	if prop.Comment != "" {
		propObj.Set("$comment", prop.Comment)
	}
	return propObj
}

func compileIndex(index *models.Index) *jsonObject {
	propsArr := make([]interface{}, 0, len(index.Properties))
	for _, indexProp := range index.Properties {
		pairObj := newJSONObject()
		pairObj.Set(indexProp.Path, indexProp.Order)
		propsArr = append(propsArr, pairObj)
	}

	indexObj := newJSONObject()
	indexObj.Set("name", index.Name)
	indexObj.Set("properties", propsArr)
	if index.Unique {
		indexObj.Set("unique", index.Unique)
	}
	return indexObj
}
