// internal/util/ids.go
// ID generator for request ids and session subjects

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether s is a well-formed uuid.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
