package mapping

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// SchemaError reports a mapping document that is missing required keys or has
// a value of the wrong shape.
type SchemaError struct {
	error
	// Fields lists the paths of the missing fields, e.g. dr_network_mappings[0].primary_profile_id.
	Fields []string
}

func NewSchemaError(err error) *SchemaError {
	return &SchemaError{error: fmt.Errorf("invalid mapping file: %w", err)}
}

func (e *SchemaError) Unwrap() error {
	return e.error
}

func newMissingFieldsError(verrs validator.ValidationErrors) *SchemaError {
	fields := make([]string, 0, len(verrs))
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe)
		fields = append(fields, path)
		errs = append(errs, fmt.Errorf("%s is not initialized", path))
	}
	return &SchemaError{
		error:  fmt.Errorf("invalid mapping file: %w", utilerrors.NewAggregate(errs)),
		Fields: fields,
	}
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
