package validation

import (
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
)

type Kind string

const (
	MissingDescriptorField Kind = "MissingDescriptorField"
	DuplicateKey           Kind = "DuplicateKeyViolation"
	EntityNotFound         Kind = "EntityNotFound"
)

// Violation is a single finding of a validation phase.
type Violation struct {
	Kind     Kind             `json:"kind"`
	Site     mapping.Site     `json:"site,omitempty"`
	Category mapping.Category `json:"category,omitempty"`
	// Field is the missing site descriptor field.
	Field string `json:"field,omitempty"`
	// Entities are the offending identifiers: duplicated keys or a missing entity name.
	Entities []string `json:"entities,omitempty"`
	Message  string   `json:"message"`
}

func (v Violation) String() string {
	return v.Message
}
