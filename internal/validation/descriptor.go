package validation

import (
	"fmt"
	"strings"

	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
)

// ValidateDescriptor reports every connection field of the site that is not set.
func ValidateDescriptor(d mapping.SiteDescriptor, site mapping.Site) []Violation {
	requiredFields := []struct {
		name  string
		value *string
	}{
		{"url", d.URL},
		{"username", d.Username},
		{"password", d.Password},
		{"ca_file", d.CAFile},
	}

	violations := []Violation{}
	for _, field := range requiredFields {
		if field.value != nil && strings.TrimSpace(*field.value) != "" {
			continue
		}
		violations = append(violations, Violation{
			Kind:    MissingDescriptorField,
			Site:    site,
			Field:   field.name,
			Message: fmt.Sprintf("The '%s' field in the %s setup is not initialized in var file mapping", field.name, site),
		})
	}
	return violations
}

// ValidateDescriptors checks both sites. The secondary site is checked even
// when the primary one already failed so that all missing fields are reported together.
func ValidateDescriptors(doc *mapping.Document) []Violation {
	violations := ValidateDescriptor(doc.Site(mapping.PrimarySite), mapping.PrimarySite)
	return append(violations, ValidateDescriptor(doc.Site(mapping.SecondarySite), mapping.SecondarySite)...)
}
