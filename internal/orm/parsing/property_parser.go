package parsing

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Keys read from the variables themselves by Parse
const (
	KeyEnableDefaultValue    = "parsing.property-parser.enable-default-value"
	KeyDefaultValueSeparator = "parsing.property-parser.default-value-separator"
)

const (
	DefaultOpenToken      = "${"
	DefaultCloseToken     = "}"
	DefaultValueSeparator = ":"
)

// Variables is a store of placeholder values. A nil Variables means no store
// is configured, which differs from an empty one only in intent; neither
// resolves anything.
type Variables map[string]string

// ResolverConfig holds configuration for a VariableResolver
type ResolverConfig struct {
	// EnableDefaultValue turns on the key<separator>default grammar
	EnableDefaultValue bool
	// DefaultValueSeparator splits key and default; empty means ":"
	DefaultValueSeparator string
	OpenToken             string
	CloseToken            string
	// Logger receives unresolved placeholders at debug level
	Logger *zap.Logger
}

// DefaultResolverConfig returns the configuration used for ${key} placeholders
// with default values disabled
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		DefaultValueSeparator: DefaultValueSeparator,
		OpenToken:             DefaultOpenToken,
		CloseToken:            DefaultCloseToken,
		Logger:                zap.NewNop(),
	}
}

// VariableResolver resolves placeholder bodies against a variable store
type VariableResolver struct {
	vars   Variables
	cfg    ResolverConfig
	logger *zap.Logger
}

// NewVariableResolver creates a resolver over vars
func NewVariableResolver(vars Variables, cfg ResolverConfig) *VariableResolver {
	if cfg.DefaultValueSeparator == "" {
		cfg.DefaultValueSeparator = DefaultValueSeparator
	}
	if cfg.OpenToken == "" {
		cfg.OpenToken = DefaultOpenToken
	}
	if cfg.CloseToken == "" {
		cfg.CloseToken = DefaultCloseToken
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VariableResolver{vars: vars, cfg: cfg, logger: logger}
}

// Resolve looks up the value for a placeholder body. With default values
// enabled, "key:default" yields the stored value of key or else default.
// The boolean is false when nothing could be resolved.
func (r *VariableResolver) Resolve(content string) (string, bool) {
	if r.vars == nil {
		return "", false
	}

	key := content
	if r.cfg.EnableDefaultValue {
		if i := strings.Index(content, r.cfg.DefaultValueSeparator); i >= 0 {
			key = content[:i]
			if value, ok := r.vars[key]; ok {
				return value, true
			}
			return content[i+len(r.cfg.DefaultValueSeparator):], true
		}
	}

	value, ok := r.vars[key]
	return value, ok
}

// HandleToken implements TokenHandler. Unresolved placeholders are returned
// as they appeared in the text.
func (r *VariableResolver) HandleToken(content string) string {
	if value, ok := r.Resolve(content); ok {
		return value
	}
	r.logger.Debug("unresolved placeholder", zap.String("content", content))
	return r.cfg.OpenToken + content + r.cfg.CloseToken
}

// Substitute replaces all placeholders in text
func (r *VariableResolver) Substitute(text string) string {
	return Substitute(text, r.cfg.OpenToken, r.cfg.CloseToken, r)
}

// MissingKeys returns the sorted, distinct keys of placeholders in text that
// cannot be resolved
func (r *VariableResolver) MissingKeys(text string) []string {
	seen := make(map[string]struct{})
	Substitute(text, r.cfg.OpenToken, r.cfg.CloseToken, TokenHandlerFunc(func(content string) string {
		if _, ok := r.Resolve(content); !ok {
			seen[content] = struct{}{}
		}
		return ""
	}))

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResolveDefaults substitutes ${...} placeholders in text from vars
func ResolveDefaults(text string, vars Variables, enableDefaults bool, separator string) string {
	cfg := DefaultResolverConfig()
	cfg.EnableDefaultValue = enableDefaults
	cfg.DefaultValueSeparator = separator
	return NewVariableResolver(vars, cfg).Substitute(text)
}

// Parse substitutes ${...} placeholders in text from vars, taking the
// default-value settings from vars itself
func Parse(text string, vars Variables) string {
	return NewVariableResolver(vars, ConfigFromVariables(vars)).Substitute(text)
}

// ConfigFromVariables returns the default configuration with the settings
// stored in vars applied
func ConfigFromVariables(vars Variables) ResolverConfig {
	return DefaultResolverConfig().WithVariables(vars)
}

// WithVariables applies the default-value settings stored under
// KeyEnableDefaultValue and KeyDefaultValueSeparator. Default values are
// enabled only by "true" in any case.
func (c ResolverConfig) WithVariables(vars Variables) ResolverConfig {
	if enabled, ok := vars[KeyEnableDefaultValue]; ok {
		c.EnableDefaultValue = strings.EqualFold(enabled, "true")
	}
	if separator, ok := vars[KeyDefaultValueSeparator]; ok {
		c.DefaultValueSeparator = separator
	}
	return c
}
