package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/ktechmidas/data-contract-creator/src/settings"
)

// CategoryJSONSchema marks violations reported by the schema engine.
// These are formatted with their instance path; other categories use
// their summary as-is.
const CategoryJSONSchema = "JsonSchemaError"

const CategoryDuplicateIndexName = "DuplicateIndexNameError"

// Violation is one structural finding from the conformance validator.
type Violation struct {
	Category     string
	Summary      string
	InstancePath string
}

// ValidatorContext holds the protocol version policy and the compiled
// conformance schema.
type ValidatorContext struct {
	ProtocolVersion int
	schema          *gojsonschema.Schema
}

func NewValidatorContext() (*ValidatorContext, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(contractMetaSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile contract meta schema: %w", err)
	}
	return &ValidatorContext{
		ProtocolVersion: ProtocolVersion,
		schema:          schema,
	}, nil
}

// ValidateStructure runs the cleaned document collection through the
// conformance schema plus the structural index checks and returns every
// violation found.
func (c *ValidatorContext) ValidateStructure(documents map[string]interface{}) ([]Violation, error) {
	result, err := c.schema.Validate(gojsonschema.NewGoLoader(documents))
	if err != nil {
		return nil, fmt.Errorf("structural validation failed to run: %w", err)
	}

	var violations []Violation
	for _, resultError := range result.Errors() {
		violations = append(violations, Violation{
			Category:     CategoryJSONSchema,
			Summary:      resultError.Description(),
			InstancePath: instancePath(resultError),
		})
	}
	violations = append(violations, checkIndices(documents)...)
	return violations, nil
}

// checkIndices reports structural index errors the conformance schema
// cannot express, one violation per occurrence.
func checkIndices(documents map[string]interface{}) []Violation {
	var violations []Violation

	docNames := make([]string, 0, len(documents))
	for name := range documents {
		docNames = append(docNames, name)
	}
	sort.Strings(docNames)

	for _, docName := range docNames {
		docSchema, ok := documents[docName].(map[string]interface{})
		if !ok {
			continue
		}
		indices, ok := docSchema["indices"].([]interface{})
		if !ok {
			continue
		}

		seen := make(map[string]bool)
		for _, entry := range indices {
			indexObj, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := indexObj["name"].(string)
			if seen[name] {
				violations = append(violations, Violation{
					Category: CategoryDuplicateIndexName,
					Summary:  fmt.Sprintf("Duplicate index name %q defined in document type %q", name, docName),
				})
			}
			seen[name] = true
		}
	}
	return violations
}

// instancePath renders a result error's context as a JSON-pointer style
// path into the validated document.
func instancePath(resultError gojsonschema.ResultError) string {
	path := resultError.Context().String("/")
	return strings.TrimPrefix(path, "(root)")
}

// FormatViolations reduces violations to a deduplicated message list.
// The same underlying error may be reported once per occurrence in the
// document tree; each distinct message appears exactly once, first
// occurrence first.
func FormatViolations(violations []Violation) []string {
	seen := make(map[string]bool)
	var messages []string
	for _, violation := range violations {
		var message string
		if violation.Category == CategoryJSONSchema {
			message = fmt.Sprintf("%s: %s, Path: %s",
				violation.Category, violation.Summary, violation.InstancePath)
		} else {
			message = violation.Summary
		}
		if !seen[message] {
			seen[message] = true
			messages = append(messages, message)
		}
	}
	return messages
}

// ContractValidator submits compiled contract documents to the
// conformance validator and reduces its findings to messages.
type ContractValidator struct {
	context *ValidatorContext
	factory *ContractFactory
	logger  *zap.SugaredLogger
}

func NewContractValidator(logger *zap.SugaredLogger) (*ContractValidator, error) {
	context, err := NewValidatorContext()
	if err != nil {
		return nil, err
	}
	return &ContractValidator{
		context: context,
		factory: NewContractFactory(context),
		logger:  logger,
	}, nil
}

// Validate checks a canonical contract document and returns the
// deduplicated finding messages. An empty list means validation passed;
// findings are data, not errors. The error return fires only on input
// the compiler could never have produced.
func (v *ContractValidator) Validate(canonicalDocument string) ([]string, error) {
	args := settings.GetSettings()

	var documents map[string]interface{}
	if err := json.Unmarshal([]byte(canonicalDocument), &documents); err != nil {
		return nil, fmt.Errorf("canonical document is not valid JSON: %w", err)
	}

	ownerID, err := NewRandomIdentifier()
	if err != nil {
		return nil, err
	}

	contract, err := v.factory.Create(ownerID, documents)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize contract: %w", err)
	}
	if args.Debug {
		v.logger.Debugf("Materialized contract %s for owner %s", contract.ID, contract.OwnerID)
	}

	violations, err := v.context.ValidateStructure(contract.CleanedObject())
	if err != nil {
		return nil, err
	}

	messages := FormatViolations(violations)
	if args.Debug {
		v.logger.Debugf("Validation produced %d distinct findings", len(messages))
	}
	return messages, nil
}
