package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/internal/validation"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var legalSites = []string{string(mapping.PrimarySite), string(mapping.SecondarySite)}

type ProbeOptions struct {
	GlobalOptions

	Site   string
	Output string
}

func DefaultProbeOptions() *ProbeOptions {
	return &ProbeOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Site:          string(mapping.PrimarySite),
	}
}

func NewCmdProbe() *cobra.Command {
	return newCmdProbe(DefaultProbeOptions())
}

func newCmdProbe(o *ProbeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Test the connection to a setup and list its clusters.",
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

func (o *ProbeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.Site, "site", o.Site, fmt.Sprintf("Setup to probe. One of: (%s).", strings.Join(legalSites, ", ")))
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *ProbeOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Site != string(mapping.PrimarySite) && o.Site != string(mapping.SecondarySite) {
		return fmt.Errorf("site must be one of %s", strings.Join(legalSites, ", "))
	}
	return validateOutput(o.Output)
}

func (o *ProbeOptions) Run(ctx context.Context, args []string) error {
	doc, err := o.Document()
	if err != nil {
		return fmt.Errorf("loading %s: %w", o.config.VarFile, err)
	}

	site := mapping.Site(o.Site)
	descriptor := doc.Site(site)
	if violations := validation.ValidateDescriptor(descriptor, site); len(violations) > 0 {
		for _, v := range violations {
			report(o.out, "[ERROR] %s", v.Message)
		}
		return fmt.Errorf("the %s setup is not fully described in %s", site, o.config.VarFile)
	}

	client, err := o.Client()
	if err != nil {
		return err
	}

	conn, err := client.Connect(ctx, descriptor)
	if conn != nil {
		defer func() {
			if cerr := conn.Close(ctx); cerr != nil {
				zap.S().Named("cli").Warnw("failed to close connection", "site", site, "error", cerr)
			}
		}()
	}
	if err != nil {
		return fmt.Errorf("connection to %s setup has failed, please check your credentials: %w", site, err)
	}

	clusters, err := conn.ListClusters(ctx)
	if err != nil {
		return fmt.Errorf("listing clusters of %s setup: %w", site, err)
	}

	if o.Output != "" {
		return printStructured(o.out, clusters, o.Output)
	}
	printClustersTable(o, clusters)
	return nil
}

func printClustersTable(o *ProbeOptions, clusters []inventory.Cluster) {
	w := tabwriter.NewWriter(o.out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "DATACENTER\tCLUSTER\tID")
	for _, c := range clusters {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.DataCenterName, c.Name, c.ID)
	}
	w.Flush()
}
