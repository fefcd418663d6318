package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"

	reportPrefix = "[Validate Mapping File] "
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func printStructured(w io.Writer, v interface{}, output string) error {
	var (
		marshalled []byte
		err        error
	)
	switch output {
	case jsonFormat:
		marshalled, err = json.Marshal(v)
	case yamlFormat:
		marshalled, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %s", output)
	}
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}
	fmt.Fprintf(w, "%s\n", string(marshalled))
	return nil
}

func report(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, reportPrefix+format+"\n", args...)
}
