package models

// DataType is the closed set of property types a document schema can use.
type DataType int

const (
	String DataType = iota
	Integer
	Array
	Object
	Number
	Boolean
)

// String returns the canonical schema name for the data type.
func (d DataType) String() string {
	switch d {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Array:
		return "array"
	case Object:
		return "object"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// ParseDataType maps a canonical schema type name back to a DataType.
// The second return value is false for an unrecognized name.
func ParseDataType(name string) (DataType, bool) {
	switch name {
	case "string":
		return String, true
	case "integer":
		return Integer, true
	case "array":
		return Array, true
	case "object":
		return Object, true
	case "number":
		return Number, true
	case "boolean":
		return Boolean, true
	default:
		return String, false
	}
}

type DocumentType struct {
	// Name is the name of the document type.
	Name string

	// Properties is the ordered list of fields in the document type.
	// Insertion order is significant for the compiled output.
	Properties []*Property

	// Indices is the ordered list of secondary lookup indices.
	Indices []*Index

	// Required holds the names of properties whose Required flag is set.
	// It is derived from the properties during compilation.
	Required []string

	// Comment is an optional annotation emitted as $comment.
	Comment string
}

type Property struct {
	Name     string
	DataType DataType

	// Required marks the property as mandatory. This flag is the source of
	// truth; the owning collection's Required list is derived from it.
	Required bool

	Description string
	Comment     string

	// String constraints
	MinLength int
	MaxLength int
	Pattern   string
	Format    string

	// Integer / Number constraints
	Minimum int
	Maximum int

	// Array constraints. ByteArray is a tri-state: nil means unset, a
	// non-nil false is still emitted in the compiled output.
	ByteArray *bool
	MinItems  int
	MaxItems  int

	// Object constraints. Properties nest recursively; ChildRequired is
	// derived from the nested properties' Required flags.
	Properties    []*Property
	MinProperties int
	MaxProperties int
	ChildRequired []string
}

type Index struct {
	// Name is the name of the index.
	Name string

	// Unique enforces uniqueness across indexed values.
	Unique bool

	// Properties is the ordered list of (path, sort order) pairs.
	Properties []IndexProperty
}

type IndexProperty struct {
	// Path is a property name or a dotted path into a nested object.
	Path string

	// Order is "asc" or "desc".
	Order string
}

const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// NewDocumentType creates an empty document type seeded with one default
// property, matching what the editor shows when a type is first added.
func NewDocumentType(name string) *DocumentType {
	return &DocumentType{
		Name:       name,
		Properties: []*Property{NewProperty()},
	}
}

// NewProperty creates a property with the default type (string) and no
// constraints.
func NewProperty() *Property {
	return &Property{DataType: String}
}

// NewIndex creates an index with a single ascending property entry.
func NewIndex(name string) *Index {
	return &Index{
		Name:       name,
		Properties: []IndexProperty{{Order: SortAscending}},
	}
}

// SetDataType switches the property's type and clears every constraint
// group that does not belong to the new type. Exactly one group is
// populated at a time.
func (p *Property) SetDataType(dataType DataType) {
	if p.DataType == dataType {
		return
	}
	p.DataType = dataType

	if dataType != String {
		p.MinLength = 0
		p.MaxLength = 0
		p.Pattern = ""
		p.Format = ""
	}
	if dataType != Integer && dataType != Number {
		p.Minimum = 0
		p.Maximum = 0
	}
	if dataType != Array {
		p.ByteArray = nil
		p.MinItems = 0
		p.MaxItems = 0
	}
	if dataType != Object {
		p.Properties = nil
		p.MinProperties = 0
		p.MaxProperties = 0
		p.ChildRequired = nil
	}
}
