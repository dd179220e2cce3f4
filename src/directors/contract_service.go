package directors

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ktechmidas/data-contract-creator/src/engine"
	"github.com/ktechmidas/data-contract-creator/src/helpers"
	"github.com/ktechmidas/data-contract-creator/src/models"
	"github.com/ktechmidas/data-contract-creator/src/settings"
	"github.com/ktechmidas/data-contract-creator/src/validation"
)

// ContractService owns the editing session's document type model and
// drives the compile, import and validate operations on it.
type ContractService struct {
	sessionID     string
	documentTypes []*models.DocumentType
	validator     *validation.ContractValidator
	settings      *settings.Arguments
	logger        *zap.SugaredLogger
}

func NewContractService(validator *validation.ContractValidator,
	logger *zap.SugaredLogger,
	settings *settings.Arguments) *ContractService {
	service := &ContractService{
		sessionID: helpers.GenerateUUID(),
		validator: validator,
		settings:  settings,
		logger:    logger,
	}

	// A fresh session starts with one empty document type, the way the
	// editor shows it.
	service.documentTypes = []*models.DocumentType{models.NewDocumentType("")}

	return service
}

// DocumentTypes returns the session's current model. Callers mutate the
// returned tree directly; the service is the single writer.
func (s *ContractService) DocumentTypes() []*models.DocumentType {
	return s.documentTypes
}

func (s *ContractService) AddDocumentType(name string) (*models.DocumentType, error) {
	args := settings.GetSettings()
	if _, err := s.GetDocumentTypeByName(name); err == nil {
		return nil, fmt.Errorf("document type '%s' already exists", name)
	}

	docType := models.NewDocumentType(name)
	s.documentTypes = append(s.documentTypes, docType)
	if args.Debug {
		s.logger.Infof("Added document type '%s' to session %s", name, s.sessionID)
	}
	return docType, nil
}

func (s *ContractService) GetDocumentTypeByName(name string) (*models.DocumentType, error) {
	for _, docType := range s.documentTypes {
		if docType.Name == name {
			return docType, nil
		}
	}
	return nil, fmt.Errorf("document type '%s' does not exist", name)
}

func (s *ContractService) RemoveDocumentType(name string) error {
	for i, docType := range s.documentTypes {
		if docType.Name == name {
			s.documentTypes = append(s.documentTypes[:i], s.documentTypes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document type '%s' does not exist", name)
}

func (s *ContractService) AddProperty(docName string) (*models.Property, error) {
	docType, err := s.GetDocumentTypeByName(docName)
	if err != nil {
		return nil, err
	}
	prop := models.NewProperty()
	docType.Properties = append(docType.Properties, prop)
	return prop, nil
}

func (s *ContractService) RemoveProperty(docName string, propName string) error {
	docType, err := s.GetDocumentTypeByName(docName)
	if err != nil {
		return err
	}
	for i, prop := range docType.Properties {
		if prop.Name == propName {
			docType.Properties = append(docType.Properties[:i], docType.Properties[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("property '%s' does not exist in document type '%s'", propName, docName)
}

// SetPropertyType switches a property's data type, clearing the
// constraint groups of the previous type.
func (s *ContractService) SetPropertyType(docName string, propName string, dataType models.DataType) error {
	docType, err := s.GetDocumentTypeByName(docName)
	if err != nil {
		return err
	}
	for _, prop := range docType.Properties {
		if prop.Name == propName {
			prop.SetDataType(dataType)
			return nil
		}
	}
	return fmt.Errorf("property '%s' does not exist in document type '%s'", propName, docName)
}

func (s *ContractService) AddIndex(docName string, indexName string) (*models.Index, error) {
	docType, err := s.GetDocumentTypeByName(docName)
	if err != nil {
		return nil, err
	}
	for _, index := range docType.Indices {
		if index.Name == indexName {
			return nil, fmt.Errorf("index '%s' already exists in document type '%s'", indexName, docName)
		}
	}
	index := models.NewIndex(indexName)
	docType.Indices = append(docType.Indices, index)
	return index, nil
}

func (s *ContractService) RemoveIndex(docName string, indexName string) error {
	docType, err := s.GetDocumentTypeByName(docName)
	if err != nil {
		return err
	}
	for i, index := range docType.Indices {
		if index.Name == indexName {
			docType.Indices = append(docType.Indices[:i], docType.Indices[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("index '%s' does not exist in document type '%s'", indexName, docName)
}

// AddIndexProperty appends a (path, order) pair to an index after
// checking the path resolves to a property of the document type.
func (s *ContractService) AddIndexProperty(docName string, indexName string, path string, order string) error {
	docType, err := s.GetDocumentTypeByName(docName)
	if err != nil {
		return err
	}
	if order != models.SortAscending && order != models.SortDescending {
		return fmt.Errorf("invalid sort order '%s'", order)
	}
	if !resolvePropertyPath(docType.Properties, path) {
		return fmt.Errorf("index path '%s' does not resolve to a property of document type '%s'", path, docName)
	}
	for _, index := range docType.Indices {
		if index.Name == indexName {
			index.Properties = append(index.Properties, models.IndexProperty{Path: path, Order: order})
			return nil
		}
	}
	return fmt.Errorf("index '%s' does not exist in document type '%s'", indexName, docName)
}

// resolvePropertyPath walks a dotted index path through the (possibly
// nested) property tree.
func resolvePropertyPath(props []*models.Property, path string) bool {
	segments := helpers.SplitPropertyPath(path)
	for depth, segment := range segments {
		var match *models.Property
		for _, prop := range props {
			if prop.Name == segment {
				match = prop
				break
			}
		}
		if match == nil {
			return false
		}
		if depth == len(segments)-1 {
			return true
		}
		if match.DataType != models.Object {
			return false
		}
		props = match.Properties
	}
	return false
}

// Compile produces the canonical contract document for the session's
// current model.
func (s *ContractService) Compile() string {
	return engine.CompileContract(s.documentTypes)
}

// ImportContract replaces the session's whole model with the document
// types reconstructed from the serialized contract. On error the current
// model is left untouched.
func (s *ContractService) ImportContract(serialized string) error {
	args := settings.GetSettings()
	docTypes, err := engine.ImportContract(serialized)
	if err != nil {
		return fmt.Errorf("failed to import contract: %w", err)
	}
	s.documentTypes = docTypes
	if args.Debug {
		s.logger.Infof("Imported %d document types into session %s", len(docTypes), s.sessionID)
	}
	return nil
}

// Validate compiles the current model and submits it to the conformance
// validator. An empty message list means the contract passed.
func (s *ContractService) Validate() ([]string, error) {
	return s.validator.Validate(s.Compile())
}
