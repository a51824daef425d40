package state

import "github.com/google/uuid"

// NewStrokeID returns a fresh random stroke identity.
func NewStrokeID() string {
	return uuid.NewString()
}

// ValidStrokeID reports whether id looks like an identity produced by NewStrokeID.
func ValidStrokeID(id string) bool {
	return uuid.Validate(id) == nil
}
