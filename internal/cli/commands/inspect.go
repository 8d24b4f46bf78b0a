package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/reflector/internal/cli/ui"
	"github.com/conduit-lang/reflector/internal/orm/reflection"
)

// accessorReport describes one side of a property
type accessorReport struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// propertyReport describes a property and its accessors
type propertyReport struct {
	Name   string          `json:"name"`
	Getter *accessorReport `json:"getter,omitempty"`
	Setter *accessorReport `json:"setter,omitempty"`
}

// typeReport is the property model of a type as printed by inspect
type typeReport struct {
	Name               string           `json:"name"`
	GoType             string           `json:"goType"`
	DefaultConstructor bool             `json:"defaultConstructor"`
	Properties         []propertyReport `json:"properties"`
}

func newInspectCommand(opts *globalOptions) *cobra.Command {
	var (
		property string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "inspect <type>",
		Short: "Show the property model of a type",
		Long: `Show the property model of a type.

Lists every readable and writable property with the accessor backing it:
a GetX/IsX/SetX method or a struct field. Property names given with
--property are matched ignoring case.`,
		Example: `  # Show all properties of a protobuf message
  reflector inspect google.protobuf.FieldDescriptorProto

  # Show one property, matched ignoring case
  reflector inspect google.protobuf.Timestamp --property SECONDS

  # Output in JSON format for tooling
  reflector inspect config.Config --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format: %s (supported: json, table)", format)
			}

			entry, ok := opts.catalog.Lookup(args[0])
			if !ok {
				suggestions := ui.FindSimilar(args[0], opts.catalog.Names(), nil)
				return report(cmd, ui.TypeNotFoundError(args[0], suggestions, opts.noColor),
					fmt.Errorf("unknown type %s", args[0]))
			}

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
			meta, err := cache.MetadataFor(entry.Type)
			if err != nil {
				return report(cmd, ui.IntrospectionError(entry.Name, err, opts.noColor), err)
			}

			rep := buildTypeReport(entry, meta)
			if property != "" {
				p, err := findProperty(meta, rep, property)
				if err != nil {
					names := append(meta.ReadableNames(), meta.WritableNames()...)
					suggestions := ui.FindSimilar(property, dedupe(names), nil)
					return report(cmd, ui.PropertyNotFoundError(property, entry.Name, suggestions, opts.noColor), err)
				}
				rep.Properties = []propertyReport{p}
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			writeTypeTable(cmd.OutOrStdout(), rep, opts.noColor)
			return nil
		},
	}

	cmd.Flags().StringVarP(&property, "property", "p", "", "Show a single property")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: json or table")

	return cmd
}

func buildTypeReport(entry CatalogEntry, meta *reflection.Metadata) typeReport {
	rep := typeReport{
		Name:               entry.Name,
		GoType:             meta.Type().String(),
		DefaultConstructor: meta.HasDefaultConstructor(),
	}

	for _, name := range dedupe(append(meta.ReadableNames(), meta.WritableNames()...)) {
		p := propertyReport{Name: name}
		if getter, err := meta.GetterAccessor(name); err == nil {
			p.Getter = describeAccessor(getter)
		}
		if setter, err := meta.SetterAccessor(name); err == nil {
			p.Setter = describeAccessor(setter)
		}
		rep.Properties = append(rep.Properties, p)
	}
	return rep
}

func describeAccessor(a *reflection.Accessor) *accessorReport {
	return &accessorReport{
		Kind: a.Kind().String(),
		Name: a.Name(),
		Type: a.Type().String(),
	}
}

// findProperty resolves name through the case-insensitive index. Names that
// are not known at all fail with the getter lookup's NoSuchAccessor error.
func findProperty(meta *reflection.Metadata, rep typeReport, name string) (propertyReport, error) {
	canonical, ok := meta.CanonicalName(name)
	if !ok {
		_, err := meta.GetterAccessor(name)
		return propertyReport{}, err
	}
	for _, p := range rep.Properties {
		if p.Name == canonical {
			return p, nil
		}
	}
	_, err := meta.GetterAccessor(canonical)
	return propertyReport{}, err
}

func dedupe(names []string) []string {
	sort.Strings(names)
	out := names[:0]
	for i, name := range names {
		if i == 0 || name != names[i-1] {
			out = append(out, name)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeTypeTable(w io.Writer, rep typeReport, noColor bool) {
	summary := ui.NewKeyValueTable(w, noColor)
	summary.AddRow("Type", rep.Name)
	summary.AddRow("Go type", rep.GoType)
	summary.AddRow("Default constructor", yesNo(rep.DefaultConstructor))
	summary.Render()
	fmt.Fprintln(w)

	table := ui.NewTable(w, noColor, "Property", "Getter", "Setter", "Type")
	for _, p := range rep.Properties {
		table.AddRow(p.Name, accessorCell(p.Getter), accessorCell(p.Setter), propertyType(p))
	}
	table.Render()
}

func accessorCell(a *accessorReport) string {
	if a == nil {
		return "-"
	}
	if strings.HasPrefix(a.Kind, "field") {
		return "field " + a.Name
	}
	return a.Name + "()"
}

// propertyType shows the getter type, adding the setter type when it differs
func propertyType(p propertyReport) string {
	switch {
	case p.Getter == nil:
		return p.Setter.Type
	case p.Setter == nil || p.Setter.Type == p.Getter.Type:
		return p.Getter.Type
	default:
		return p.Getter.Type + " / " + p.Setter.Type
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
