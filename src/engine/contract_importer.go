package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ktechmidas/data-contract-creator/src/models"
)

// ImportContract parses a serialized contract document and reconstructs
// the editable document type model from it. The import is whole-model
// replacing: the returned slice is the complete new model and anything
// not present in the source text is gone.
//
// A document that is not parseable JSON yields ErrMalformedContract; an
// unrecognized property type yields an *UnknownTypeError. Everything
// else is reconstructed tolerantly, skipping values of unexpected shape
// the way the editor always has.
func ImportContract(serialized string) ([]*models.DocumentType, error) {
	keys, values, err := decodeOrderedObject([]byte(serialized))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContract, err)
	}

	docTypes := make([]*models.DocumentType, 0, len(keys))
	for _, name := range keys {
		docType, err := importDocumentType(name, values[name])
		if err != nil {
			return nil, err
		}
		if docType != nil {
			docTypes = append(docTypes, docType)
		}
	}
	return docTypes, nil
}

func importDocumentType(name string, raw json.RawMessage) (*models.DocumentType, error) {
	var docObj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &docObj); err != nil {
		// Top-level entries that are not objects carry no schema.
		return nil, nil
	}

	docType := &models.DocumentType{Name: name}
	path := "/" + name

	requiredNames := decodeRequiredList(docObj["required"])
	if propsRaw, ok := docObj["properties"]; ok {
		props, err := importProperties(path+"/properties", propsRaw, requiredNames)
		if err != nil {
			return nil, err
		}
		docType.Properties = props
	}

	if indicesRaw, ok := docObj["indices"]; ok {
		docType.Indices = importIndices(indicesRaw)
	}

	if commentRaw, ok := docObj["$comment"]; ok {
		json.Unmarshal(commentRaw, &docType.Comment)
	}

	return docType, nil
}

// importProperties rebuilds an ordered property list from a properties
// object, preserving the source text's key order.
func importProperties(path string, raw json.RawMessage, requiredNames map[string]bool) ([]*models.Property, error) {
	keys, values, err := decodeOrderedObject(raw)
	if err != nil {
		// Not an object; nothing to reconstruct.
		return nil, nil
	}

	props := make([]*models.Property, 0, len(keys))
	for _, name := range keys {
		prop, err := importProperty(path+"/"+name, name, values[name], requiredNames[name])
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	return props, nil
}

func importProperty(path string, name string, raw json.RawMessage, required bool) (*models.Property, error) {
	prop := models.NewProperty()
	prop.Name = name
	prop.Required = required

	var propObj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &propObj); err != nil {
		return prop, nil
	}

	if typeRaw, ok := propObj["type"]; ok {
		var typeName string
		if err := json.Unmarshal(typeRaw, &typeName); err == nil {
			dataType, known := models.ParseDataType(typeName)
			if !known {
				return nil, &UnknownTypeError{Path: path, TypeName: typeName}
			}
			prop.DataType = dataType
		}
	}

	decodeString(propObj["description"], &prop.Description)
	decodeString(propObj["$comment"], &prop.Comment)
	decodeInt(propObj["minLength"], &prop.MinLength)
	decodeInt(propObj["maxLength"], &prop.MaxLength)
	decodeString(propObj["pattern"], &prop.Pattern)
	decodeString(propObj["format"], &prop.Format)
	decodeInt(propObj["minimum"], &prop.Minimum)
	decodeInt(propObj["maximum"], &prop.Maximum)
	decodeInt(propObj["minItems"], &prop.MinItems)
	decodeInt(propObj["maxItems"], &prop.MaxItems)
	decodeInt(propObj["minProperties"], &prop.MinProperties)
	decodeInt(propObj["maxProperties"], &prop.MaxProperties)

	if byteArrayRaw, ok := propObj["byteArray"]; ok {
		var byteArray bool
		if err := json.Unmarshal(byteArrayRaw, &byteArray); err == nil {
			prop.ByteArray = &byteArray
		}
	}

	if nestedRaw, ok := propObj["properties"]; ok {
		// The object property's own required array scopes its children.
		childRequired := decodeRequiredList(propObj["required"])
		nested, err := importProperties(path+"/properties", nestedRaw, childRequired)
		if err != nil {
			return nil, err
		}
		prop.Properties = nested
	}

	return prop, nil
}

func importIndices(raw json.RawMessage) []*models.Index {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	indices := make([]*models.Index, 0, len(entries))
	for _, entry := range entries {
		var indexObj map[string]json.RawMessage
		if err := json.Unmarshal(entry, &indexObj); err != nil {
			continue
		}

		index := &models.Index{}
		decodeString(indexObj["name"], &index.Name)
		if uniqueRaw, ok := indexObj["unique"]; ok {
			json.Unmarshal(uniqueRaw, &index.Unique)
		}

		if propsRaw, ok := indexObj["properties"]; ok {
			var pairs []json.RawMessage
			if err := json.Unmarshal(propsRaw, &pairs); err == nil {
				for _, pairRaw := range pairs {
					keys, values, err := decodeOrderedObject(pairRaw)
					if err != nil || len(keys) == 0 {
						continue
					}
					// An index-properties object holds one pair; when
					// several keys appear the last one wins.
					indexProp := models.IndexProperty{}
					for _, key := range keys {
						indexProp.Path = key
						decodeString(values[key], &indexProp.Order)
					}
					index.Properties = append(index.Properties, indexProp)
				}
			}
		}

		indices = append(indices, index)
	}
	return indices
}

// decodeRequiredList reads a required array into a membership set.
func decodeRequiredList(raw json.RawMessage) map[string]bool {
	required := make(map[string]bool)
	if raw == nil {
		return required
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return required
	}
	for _, name := range names {
		required[name] = true
	}
	return required
}

func decodeString(raw json.RawMessage, dest *string) {
	if raw != nil {
		json.Unmarshal(raw, dest)
	}
}

func decodeInt(raw json.RawMessage, dest *int) {
	if raw != nil {
		json.Unmarshal(raw, dest)
	}
}

// decodeOrderedObject decodes a JSON object into its member values while
// recording the key order of the source text, which encoding/json maps
// discard.
func decodeOrderedObject(raw []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}
