package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kubev2v/dr-mapping-validator/internal/validation"
	"github.com/kubev2v/dr-mapping-validator/pkg/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ErrMappingInvalid is returned when the run found at least one violation.
var ErrMappingInvalid = errors.New("the variable mapping file is not valid")

type ValidateOptions struct {
	GlobalOptions

	Output      string
	MetricsFile string
}

func DefaultValidateOptions() *ValidateOptions {
	return &ValidateOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdValidate() *cobra.Command {
	return newCmdValidate(DefaultValidateOptions())
}

func newCmdValidate(o *ValidateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the variable mapping file against the primary setup.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ValidateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write the run metrics to this file in the Prometheus textfile format")
}

func (o *ValidateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *ValidateOptions) Run(ctx context.Context, args []string) error {
	text := o.Output == ""
	if text {
		report(o.out, "Validate variable mapping file for oVirt ansible disaster recovery")
		report(o.out, "Var file: %s", o.config.VarFile)
	}

	doc, err := o.Document()
	if err != nil {
		if text {
			report(o.out, "[ERROR] %v", err)
			report(o.out, "[ERROR] Failed to validate variable mapping file for oVirt ansible disaster recovery")
		}
		return fmt.Errorf("loading %s: %w", o.config.VarFile, err)
	}

	client, err := o.Client()
	if err != nil {
		return err
	}

	verdict, err := validation.NewEngine(client).Run(ctx, doc)
	if err != nil {
		return err
	}

	if o.MetricsFile != "" {
		if err := metrics.WriteTextfile(o.MetricsFile); err != nil {
			zap.S().Named("cli").Warnw("failed to write metrics", "file", o.MetricsFile, "error", err)
		}
	}

	if !text {
		if err := printStructured(o.out, verdict, o.Output); err != nil {
			return err
		}
	} else {
		o.printVerdict(verdict)
	}

	if !verdict.OK {
		return ErrMappingInvalid
	}
	return nil
}

func (o *ValidateOptions) printVerdict(verdict validation.Verdict) {
	for _, p := range verdict.Phases {
		report(o.out, "Phase %s: %s (%d violations)", p.Phase, p.Status, p.Violations)
	}
	for _, m := range verdict.Messages {
		report(o.out, "[ERROR] %s", m)
	}
	if verdict.OK {
		report(o.out, "[SUCCESS] Finished validating variable mapping file for oVirt ansible disaster recovery")
		return
	}
	report(o.out, "[ERROR] Failed to validate variable mapping file for oVirt ansible disaster recovery")
}
