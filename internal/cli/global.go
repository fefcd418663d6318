package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kubev2v/dr-mapping-validator/internal/config"
	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/pkg/log"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

type GlobalOptions struct {
	ConfFile              string
	VarFile               string
	LogLevel              string
	Provider              string
	Timeout               time.Duration
	PrimaryPasswordFile   string
	SecondaryPasswordFile string

	config    *config.Config
	newClient func(provider string, timeout time.Duration) (inventory.Client, error)
	out       io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		newClient: inventory.NewClient,
		out: os.Stdout,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfFile, "conf-file", o.ConfFile, fmt.Sprintf("Path of the configuration file (default %q, env DR_CONF_FILE)", config.DefaultConfFile))
	fs.StringVar(&o.VarFile, "var-file", o.VarFile, "Path of the mapping file, overrides the configuration file and DR_VAR_FILE")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level, overrides DR_LOG_LEVEL")
	fs.StringVar(&o.Provider, "provider", o.Provider, fmt.Sprintf("Management API of the setups. One of: (%s), overrides DR_PROVIDER", strings.Join(inventory.Providers, ", ")))
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout of the connection to a setup, overrides DR_CONNECT_TIMEOUT")
	fs.StringVar(&o.PrimaryPasswordFile, "primary-password-file", o.PrimaryPasswordFile, "File holding the password of the primary setup, overrides DR_PRIMARY_PASSWORD")
	fs.StringVar(&o.SecondaryPasswordFile, "secondary-password-file", o.SecondaryPasswordFile, "File holding the password of the secondary setup, overrides DR_SECONDARY_PASSWORD")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.ConfFile)
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	if o.VarFile != "" {
		cfg.VarFile = o.VarFile
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Provider != "" {
		cfg.Provider = o.Provider
	}
	if o.Timeout > 0 {
		cfg.ConnectTimeout = o.Timeout
	}
	if o.PrimaryPasswordFile != "" {
		if cfg.PrimaryPassword, err = readPasswordFile(o.PrimaryPasswordFile); err != nil {
			return err
		}
	}
	if o.SecondaryPasswordFile != "" {
		if cfg.SecondaryPassword, err = readPasswordFile(o.SecondaryPasswordFile); err != nil {
			return err
		}
	}
	o.config = cfg

	zap.ReplaceGlobals(log.InitLog(log.ParseLevel(cfg.LogLevel)))
	zap.S().Named("cli").Debugf("using config: %s", cfg)

	o.out = cmd.OutOrStdout()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if o.config != nil && !funk.Contains(inventory.Providers, o.config.Provider) {
		return fmt.Errorf("provider must be one of %s", strings.Join(inventory.Providers, ", "))
	}
	return nil
}

func (o *GlobalOptions) Client() (inventory.Client, error) {
	return o.newClient(o.config.Provider, o.config.ConnectTimeout)
}

// Document loads the configured mapping file and sets the site passwords.
func (o *GlobalOptions) Document() (*mapping.Document, error) {
	doc, err := mapping.LoadFile(o.config.VarFile)
	if err != nil {
		return nil, err
	}
	return doc.WithPasswords(o.config.PrimaryPassword, o.config.SecondaryPassword), nil
}

func readPasswordFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading password file: %w", err)
	}
	return strings.TrimRight(string(content), "\r\n"), nil
}
