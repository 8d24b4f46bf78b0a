package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/reflector/internal/cli/config"
	"github.com/conduit-lang/reflector/internal/cli/ui"
	"github.com/conduit-lang/reflector/internal/orm/reflection"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by all commands
type globalOptions struct {
	configPath   string
	accessPolicy string
	logLevel     string
	noColor      bool
	catalog      *Catalog
}

// reportedError marks an error whose message was already written for the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report writes message to the command's error stream and marks err as reported
func report(cmd *cobra.Command, message string, err error) error {
	fmt.Fprint(cmd.ErrOrStderr(), message)
	return &reportedError{err: err}
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(DefaultCatalog())
}

func newRootCommand(catalog *Catalog) *cobra.Command {
	opts := &globalOptions{catalog: catalog}

	rootCmd := &cobra.Command{
		Use:   "reflector",
		Short: "Inspect Go property models and substitute ${...} placeholders",
		Long: color.CyanString(`Reflector - property metadata and placeholder tooling

Reflector shows which properties a Go type exposes through GetX/IsX/SetX
methods and fields, and resolves ${key} and ${key:default} placeholders
from variable files.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: ./reflector.yaml)")
	flags.StringVar(&opts.accessPolicy, "access-policy", "", "Unexported members: force, exported or strict")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newTypesCommand(opts))
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newResolveCommand(opts))

	return rootCmd
}

// loadConfig loads the config file and applies flag overrides
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, report(cmd, ui.ConfigError(err.Error(), o.noColor), err)
	}

	if o.accessPolicy != "" {
		if _, ok := reflection.ParseAccessPolicy(o.accessPolicy); !ok {
			err := fmt.Errorf("invalid access policy %q", o.accessPolicy)
			return nil, report(cmd, ui.ConfigError(err.Error(), o.noColor), err)
		}
		cfg.Reflection.AccessPolicy = o.accessPolicy
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// logger builds the diagnostic logger; it writes to stderr so command output
// stays clean
func (o *globalOptions) logger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, report(cmd, ui.ConfigError(err.Error(), o.noColor), err)
	}
	return logger, nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the reflector version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}
			printVersion(cmd.OutOrStdout(), goVer)
		},
	}
}

func printVersion(w io.Writer, goVer string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	valueColor := color.New(color.FgWhite)

	for _, line := range [][2]string{
		{"Reflector version: ", Version},
		{"Git commit: ", GitCommit},
		{"Build date: ", BuildDate},
		{"Go version: ", goVer},
	} {
		titleColor.Fprint(w, line[0])
		valueColor.Fprintln(w, line[1])
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
