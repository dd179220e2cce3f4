package validation

import (
	"fmt"
)

// ProtocolVersion is the platform protocol version contracts are
// materialized under.
const ProtocolVersion = 1

// Contract is a materialized data contract: the canonical document
// collection bound to an owner under a protocol version.
type Contract struct {
	ID      Identifier
	OwnerID Identifier
	Version int

	// Documents maps document type names to their canonical schemas.
	Documents map[string]interface{}
}

// ContractFactory materializes contracts for a validator context.
type ContractFactory struct {
	context *ValidatorContext
}

func NewContractFactory(context *ValidatorContext) *ContractFactory {
	return &ContractFactory{context: context}
}

// Create materializes a contract from a parsed canonical document under
// the given owner. The compiler supplies every field the contract needs,
// so a failure here means the input did not come from the compiler.
func (f *ContractFactory) Create(ownerID Identifier, documents map[string]interface{}) (*Contract, error) {
	if documents == nil {
		return nil, fmt.Errorf("contract has no document collection")
	}
	for name, docSchema := range documents {
		if _, ok := docSchema.(map[string]interface{}); !ok {
			return nil, fmt.Errorf("document type %q is not a schema object", name)
		}
	}

	entropy, err := NewRandomIdentifier()
	if err != nil {
		return nil, err
	}

	return &Contract{
		ID:        DeriveContractID(ownerID, entropy),
		OwnerID:   ownerID,
		Version:   f.context.ProtocolVersion,
		Documents: documents,
	}, nil
}

// CleanedObject returns the contract's document collection with null
// members stripped, which is the representation structural validation
// expects.
func (c *Contract) CleanedObject() map[string]interface{} {
	cleaned := removeNulls(c.Documents)
	return cleaned.(map[string]interface{})
}

func removeNulls(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for key, member := range typed {
			if member == nil {
				continue
			}
			out[key] = removeNulls(member)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(typed))
		for _, member := range typed {
			out = append(out, removeNulls(member))
		}
		return out
	default:
		return value
	}
}
