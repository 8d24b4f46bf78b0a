package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/reflector/internal/cli/config"
	"github.com/conduit-lang/reflector/internal/cli/ui"
	"github.com/conduit-lang/reflector/internal/orm/parsing"
)

// promptForValue asks the user for the value of an unresolved key
var promptForValue = func(key string) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Value for %s:", key),
	}
	if err := survey.AskOne(prompt, &value); err != nil {
		return "", err
	}
	return value, nil
}

// isTerminal reports whether r is an interactive terminal
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type resolveOptions struct {
	varsFiles      []string
	assignments    []string
	defaults       bool
	separator      string
	interactive    bool
	failUnresolved bool
}

func newResolveCommand(opts *globalOptions) *cobra.Command {
	ro := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Substitute ${...} placeholders in a file or stdin",
		Long: `Substitute ${...} placeholders in a file or stdin.

Values come from YAML variable files (nested keys are joined with dots) and
--set assignments, later sources winning. With default values enabled,
${key:default} falls back to the text after the separator. Placeholders
that cannot be resolved are left as they are. Write \${ for a literal ${.

Variables may turn on default values themselves with
parsing.property-parser.enable-default-value: "true" and pick a separator
with parsing.property-parser.default-value-separator.`,
		Example: `  # Resolve a template from a variables file
  reflector resolve datasource.properties --vars env.yaml

  # Pipe text and use default values
  echo 'jdbc://${host:localhost}:${port:5432}' | reflector resolve --defaults

  # Prompt for anything still missing
  reflector resolve app.conf --vars env.yaml --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd, cfg)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			vars, err := ro.variables()
			if err != nil {
				return err
			}

			resolverCfg := ro.resolverConfig(cmd, cfg, vars, logger)
			resolver := parsing.NewVariableResolver(vars, resolverCfg)

			missing := resolver.MissingKeys(text)
			if ro.interactive && len(missing) > 0 {
				if len(args) == 0 {
					return errors.New("--interactive needs a file argument, stdin is used for prompts")
				}
				if !isTerminal(cmd.InOrStdin()) {
					return errors.New("--interactive needs a terminal")
				}
				answers, err := ask(missing)
				if err != nil {
					return err
				}
				vars = config.Merge(vars, answers)
				resolver = parsing.NewVariableResolver(vars, resolverCfg)
				missing = resolver.MissingKeys(text)
			}

			logger.Debug("resolving placeholders",
				zap.Int("variables", len(vars)),
				zap.Bool("defaults", resolverCfg.EnableDefaultValue),
				zap.String("separator", resolverCfg.DefaultValueSeparator),
			)
			fmt.Fprint(cmd.OutOrStdout(), resolver.Substitute(text))

			if len(missing) > 0 {
				message := fmt.Sprintf("%d placeholder(s) left unresolved: %s", len(missing), strings.Join(missing, ", "))
				if ro.failUnresolved {
					return report(cmd, ui.FormatError(ui.ErrorOptions{
						Problem: message,
						NoColor: opts.noColor,
					}), errors.New(message))
				}
				fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(message, nil, opts.noColor))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&ro.varsFiles, "vars", nil, "YAML variables file (repeatable)")
	flags.StringArrayVar(&ro.assignments, "set", nil, "Set a variable, key=value (repeatable)")
	flags.BoolVar(&ro.defaults, "defaults", false, "Enable ${key:default} values")
	flags.StringVar(&ro.separator, "separator", "", "Separator between key and default value")
	flags.BoolVarP(&ro.interactive, "interactive", "i", false, "Prompt for unresolved keys")
	flags.BoolVar(&ro.failUnresolved, "fail-unresolved", false, "Exit with an error when placeholders remain")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return "", errors.New("no input: pass a file or pipe text on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// variables merges the variable files and assignments. Without either the
// store stays nil.
func (ro *resolveOptions) variables() (parsing.Variables, error) {
	if len(ro.varsFiles) == 0 && len(ro.assignments) == 0 {
		return nil, nil
	}

	sources := make([]parsing.Variables, 0, len(ro.varsFiles)+1)
	for _, path := range ro.varsFiles {
		vars, err := config.LoadVariables(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, vars)
	}
	set, err := config.ParseAssignments(ro.assignments)
	if err != nil {
		return nil, err
	}
	sources = append(sources, set)
	return config.Merge(sources...), nil
}

// resolverConfig layers the config file, settings stored in the variables
// and command line flags, in that order
func (ro *resolveOptions) resolverConfig(cmd *cobra.Command, cfg *config.Config, vars parsing.Variables, logger *zap.Logger) parsing.ResolverConfig {
	rc := cfg.ResolverConfig(logger).WithVariables(vars)

	if cmd.Flags().Changed("defaults") {
		rc.EnableDefaultValue = ro.defaults
	}
	if cmd.Flags().Changed("separator") {
		rc.DefaultValueSeparator = ro.separator
	}
	return rc
}

func ask(keys []string) (parsing.Variables, error) {
	answers := make(parsing.Variables, len(keys))
	for _, key := range keys {
		value, err := promptForValue(key)
		if err != nil {
			return nil, fmt.Errorf("prompt for %s: %w", strconv.Quote(key), err)
		}
		answers[key] = value
	}
	return answers, nil
}
