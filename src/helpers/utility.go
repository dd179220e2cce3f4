package helpers

import (
	"strings"

	"github.com/google/uuid"
)

// Add this function to generate UUIDs
func GenerateUUID() string {
	return uuid.New().String()
}

// SplitPropertyPath splits a dotted index property path into its segments.
func SplitPropertyPath(path string) []string {
	return strings.Split(path, ".")
}
