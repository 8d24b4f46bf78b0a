package commands

import (
	"reflect"
	"sort"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/conduit-lang/reflector/internal/cli/config"
	"github.com/conduit-lang/reflector/internal/orm/parsing"
	"github.com/conduit-lang/reflector/internal/orm/reflection"
)

// CatalogEntry is a type that can be inspected by name
type CatalogEntry struct {
	Name   string
	Type   reflect.Type
	Source string
}

// Catalog maps names to inspectable types
type Catalog struct {
	entries map[string]CatalogEntry
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]CatalogEntry)}
}

// DefaultCatalog returns the generated protobuf messages and the reflector's
// own configuration types
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, msg := range []proto.Message{
		&descriptorpb.FileDescriptorProto{},
		&descriptorpb.DescriptorProto{},
		&descriptorpb.FieldDescriptorProto{},
		&descriptorpb.EnumDescriptorProto{},
		&descriptorpb.ServiceDescriptorProto{},
		&descriptorpb.MethodDescriptorProto{},
		&timestamppb.Timestamp{},
		&durationpb.Duration{},
		&wrapperspb.StringValue{},
		&wrapperspb.Int64Value{},
		&wrapperspb.BoolValue{},
	} {
		c.RegisterMessage(msg)
	}

	for _, v := range []any{
		config.Config{},
		config.ReflectionConfig{},
		config.ParsingConfig{},
		config.LogConfig{},
		parsing.ResolverConfig{},
		reflection.CacheConfig{},
	} {
		t := reflect.TypeOf(v)
		c.Register(t.String(), t, "go")
	}
	return c
}

// Register adds t under name, replacing any earlier entry
func (c *Catalog) Register(name string, t reflect.Type, source string) {
	c.entries[name] = CatalogEntry{Name: name, Type: t, Source: source}
}

// RegisterMessage adds a generated message under its protobuf full name
func (c *Catalog) RegisterMessage(msg proto.Message) {
	name := string(msg.ProtoReflect().Descriptor().FullName())
	c.Register(name, reflect.TypeOf(msg), "protobuf")
}

// Lookup finds an entry by exact name, then ignoring case
func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	if e, ok := c.entries[name]; ok {
		return e, true
	}
	for key, e := range c.entries {
		if strings.EqualFold(key, name) {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Names returns all registered names in order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
