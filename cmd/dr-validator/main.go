package main

import (
	"os"

	"github.com/kubev2v/dr-mapping-validator/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewDRValidatorCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewDRValidatorCommand runs validate when called without a subcommand.
func NewDRValidatorCommand() *cobra.Command {
	validate := cli.NewCmdValidate()
	cmd := &cobra.Command{
		Use:          "dr-validator [flags] [options]",
		Short:        "dr-validator checks the variable mapping file of oVirt ansible disaster recovery.",
		Args:         cobra.NoArgs,
		RunE:         validate.RunE,
		SilenceUsage: true,
	}
	cmd.Flags().AddFlagSet(validate.Flags())

	cmd.AddCommand(validate)
	cmd.AddCommand(cli.NewCmdProbe())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
