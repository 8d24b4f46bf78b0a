package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/reflector/internal/cli/ui"
	"github.com/conduit-lang/reflector/internal/orm/reflection"
)

func newTypesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the types that can be inspected",
		Long: `List the types that can be inspected.

Each type is introspected with the configured access policy; the property
count is replaced by the failure kind when its property model cannot be built.`,
		Example: `  # List all types
  reflector types

  # See which types only work with unexported members exposed
  reflector types --access-policy strict`,
		Args: cobra.NoArgs,
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

			cache := reflection.NewCache(cfg.CacheConfig(logger))
			table := ui.NewTable(cmd.OutOrStdout(), opts.noColor, "Name", "Go Type", "Source", "Readable", "Writable")
			for _, name := range opts.catalog.Names() {
				entry, _ := opts.catalog.Lookup(name)
				var readable, writable string

				meta, err := cache.MetadataFor(entry.Type)
				if err != nil {
					logger.Info("type cannot be introspected", zap.String("type", name), zap.Error(err))
					readable, writable = failureKind(err), "-"
				} else {
					readable = strconv.Itoa(len(meta.ReadableNames()))
					writable = strconv.Itoa(len(meta.WritableNames()))
				}
				table.AddRow(name, entry.Type.String(), entry.Source, readable, writable)
			}
			table.Render()
			return nil
		},
	}
}

// failureKind names the kind of a metadata build failure
func failureKind(err error) string {
	switch {
	case reflection.IsAmbiguousAccessor(err):
		return reflection.KindAmbiguousAccessor.String()
	case reflection.IsIntrospectionFailure(err):
		return reflection.KindIntrospectionFailure.String()
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
