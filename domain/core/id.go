package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RenderID ID
	DialogID ID
)

func (id RenderID) String() string { return ID(id).String() }
func (id DialogID) String() string { return ID(id).String() }

// NewRenderID issues the identifier of one render instruction
func NewRenderID() RenderID { return RenderID(NewID()) }

// NewDialogID issues the identifier of one modal dialog
func NewDialogID() DialogID { return DialogID(NewID()) }

// ParseDialogID parses a string into DialogID
func ParseDialogID(s string) (DialogID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dialog ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("dialog ID %q is not a UUID: %w", s, err)
	}
	return DialogID(s), nil
}
