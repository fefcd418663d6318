package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ErrPhaseOrdering is returned by Aggregate when the existence phase ran
// although the descriptor or duplicate phase had findings.
var ErrPhaseOrdering = errors.New("existence validation must not run after a failed descriptor or duplicate validation")

// ExistenceResult is the outcome of an existence phase that was attempted.
type ExistenceResult struct {
	Violations []Violation
	// Err is set when the primary site could not be queried.
	Err error
}

// Verdict is the single result of a validation run.
type Verdict struct {
	RunID      string        `json:"runId,omitempty"`
	OK         bool          `json:"ok"`
	Messages   []string      `json:"messages"`
	Violations []Violation   `json:"violations,omitempty"`
	Phases     []PhaseResult `json:"phases,omitempty"`
}

// DuplicateViolations turns the detector output into one violation per
// category that has duplicates, in report order.
func DuplicateViolations(d mapping.Duplicates) []Violation {
	violations := []Violation{}
	for _, c := range d.Categories() {
		keys := d[c]
		if keys.Len() == 0 {
			continue
		}
		entities := sets.List(keys)
		violations = append(violations, Violation{
			Kind:     DuplicateKey,
			Category: c,
			Entities: entities,
			Message:  fmt.Sprintf("Found the following duplicate keys in %s: %s", c, strings.Join(entities, ", ")),
		})
	}
	return violations
}

// Aggregate merges the findings of the three phases. A nil existence result
// means the phase was not attempted, which is required when an earlier phase
// has findings and otherwise leaves the verdict failed.
func Aggregate(descriptor []Violation, duplicates mapping.Duplicates, existence *ExistenceResult) (Verdict, error) {
	gatesPassed := len(descriptor) == 0 && duplicates != nil && duplicates.Valid()
	if existence != nil && !gatesPassed {
		return Verdict{}, ErrPhaseOrdering
	}

	violations := append([]Violation{}, descriptor...)
	violations = append(violations, DuplicateViolations(duplicates)...)

	messages := []string{}
	for _, v := range violations {
		messages = append(messages, v.Message)
	}

	switch {
	case duplicates == nil:
		messages = append(messages, "Duplicate key validation was not performed")
	case gatesPassed && existence == nil:
		messages = append(messages, "Entity existence validation was not performed")
	case existence != nil:
		for _, v := range existence.Violations {
			violations = append(violations, v)
			messages = append(messages, v.Message)
		}
		if existence.Err != nil {
			messages = append(messages, fmt.Sprintf("Connection to %s setup has failed: %v", mapping.PrimarySite, existence.Err))
		}
	}

	return Verdict{
		OK:         len(messages) == 0,
		Messages:   messages,
		Violations: violations,
	}, nil
}
