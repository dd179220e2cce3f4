package engine

// Add custom error definitions here
import (
	"errors"
	"fmt"
)

// ErrMalformedContract is returned when the imported text is not a JSON
// object. The editor used to fall back to an empty model in this case,
// which silently discarded the user's input; the importer now refuses.
var ErrMalformedContract = errors.New("malformed contract document")

// UnknownTypeError is returned when a property carries a type
// discriminator outside the closed data type set.
type UnknownTypeError struct {
	// Path locates the offending property in the source document.
	Path string

	// TypeName is the unrecognized discriminator.
	TypeName string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown property type %q at %s", e.TypeName, e.Path)
}
