package validation

// contractMetaSchema is the protocol's conformance schema for contract
// documents. Structural validation runs a contract's cleaned document
// collection against it.
const contractMetaSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "maxProperties": 100,
  "patternProperties": {
    "^[a-zA-Z0-9-_]{1,64}$": { "$ref": "#/definitions/documentSchema" }
  },
  "additionalProperties": false,
  "definitions": {
    "documentSchema": {
      "type": "object",
      "properties": {
        "type": { "const": "object" },
        "properties": {
          "type": "object",
          "minProperties": 1,
          "maxProperties": 100,
          "propertyNames": { "pattern": "^[a-zA-Z0-9-_$]{1,64}$" },
          "additionalProperties": { "$ref": "#/definitions/propertySchema" }
        },
        "indices": {
          "type": "array",
          "minItems": 1,
          "maxItems": 10,
          "items": { "$ref": "#/definitions/indexSchema" }
        },
        "required": {
          "type": "array",
          "minItems": 1,
          "items": { "type": "string" },
          "uniqueItems": true
        },
        "additionalProperties": { "const": false },
        "$comment": { "type": "string" }
      },
      "required": ["type", "properties", "additionalProperties"],
      "additionalProperties": false
    },
    "propertySchema": {
      "type": "object",
      "properties": {
        "type": { "enum": ["string", "integer", "array", "object", "number", "boolean"] },
        "description": { "type": "string" },
        "$comment": { "type": "string" },
        "minLength": { "type": "integer", "minimum": 0 },
        "maxLength": { "type": "integer", "minimum": 0 },
        "pattern": { "type": "string", "format": "regex" },
        "format": { "type": "string" },
        "minimum": { "type": "integer" },
        "maximum": { "type": "integer" },
        "byteArray": { "type": "boolean" },
        "minItems": { "type": "integer", "minimum": 0 },
        "maxItems": { "type": "integer", "minimum": 0 },
        "properties": {
          "type": "object",
          "propertyNames": { "pattern": "^[a-zA-Z0-9-_$]{1,64}$" },
          "additionalProperties": { "$ref": "#/definitions/propertySchema" }
        },
        "minProperties": { "type": "integer", "minimum": 0 },
        "maxProperties": { "type": "integer", "minimum": 0 },
        "required": {
          "type": "array",
          "items": { "type": "string" },
          "uniqueItems": true
        },
        "additionalProperties": { "const": false }
      },
      "required": ["type"],
      "additionalProperties": false
    },
    "indexSchema": {
      "type": "object",
      "properties": {
        "name": { "type": "string", "minLength": 1, "maxLength": 32 },
        "properties": {
          "type": "array",
          "minItems": 1,
          "maxItems": 10,
          "items": {
            "type": "object",
            "minProperties": 1,
            "maxProperties": 1,
            "additionalProperties": { "enum": ["asc", "desc"] }
          }
        },
        "unique": { "type": "boolean" }
      },
      "required": ["name", "properties"],
      "additionalProperties": false
    }
  }
}`
