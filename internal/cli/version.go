package cli

import (
	"fmt"
	"strings"

	"github.com/kubev2v/dr-mapping-validator/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type VersionOptions struct {
	Output string
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		Output: "",
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the validator version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd, args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *VersionOptions) Run(cmd *cobra.Command, args []string) error {
	versionInfo := version.Get()
	if o.Output != "" {
		return printStructured(cmd.OutOrStdout(), versionInfo, o.Output)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "DR Validator Version: %s\n", versionInfo.String())
	return nil
}
