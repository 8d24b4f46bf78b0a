package reflection

import (
	"reflect"
	"sort"
	"strings"
)

// Metadata is the property model of one type: which properties can be read
// or written, through which accessor, and with which value type. It is
// immutable once built and safe to share between goroutines.
type Metadata struct {
	typ         reflect.Type
	readable    []string
	writable    []string
	getters     map[string]*Accessor
	setters     map[string]*Accessor
	constructor *Constructor
	// caseInsensitive maps upper-cased names to their canonical spelling
	caseInsensitive map[string]string
}

// builder assembles Metadata for a single descriptor
type builder struct {
	d           TypeDescriptor
	t           reflect.Type
	getters     map[string]*Accessor
	setters     map[string]*Accessor
	constructor *Constructor
}

// NewMetadata builds the property model described by d
func NewMetadata(d TypeDescriptor) (*Metadata, error) {
	b := &builder{
		d:       d,
		t:       d.Type(),
		getters: make(map[string]*Accessor),
		setters: make(map[string]*Accessor),
	}

	b.addDefaultConstructor()

	methods, err := collectMethods(d)
	if err != nil {
		return nil, err
	}
	if err := b.addGetMethods(methods); err != nil {
		return nil, err
	}
	if err := b.addSetMethods(methods); err != nil {
		return nil, err
	}
	if err := b.addFields(); err != nil {
		return nil, err
	}

	return b.metadata(), nil
}

// addDefaultConstructor records the zero-argument constructor, if any. A
// constructor that cannot be made accessible is left out rather than
// failing the build.
func (b *builder) addDefaultConstructor() {
	for _, c := range b.d.DeclaredConstructors() {
		if len(c.Params) != 0 || c.Build == nil {
			continue
		}
		if !c.Accessible {
			if ok, err := b.d.TryForceAccess(&c.Member); err != nil || !ok {
				continue
			}
		}
		b.constructor = &c
	}
}

func (b *builder) metadata() *Metadata {
	m := &Metadata{
		typ:             b.t,
		readable:        sortedKeys(b.getters),
		writable:        sortedKeys(b.setters),
		getters:         b.getters,
		setters:         b.setters,
		constructor:     b.constructor,
		caseInsensitive: make(map[string]string, len(b.getters)+len(b.setters)),
	}
	for _, name := range m.readable {
		m.caseInsensitive[strings.ToUpper(name)] = name
	}
	for _, name := range m.writable {
		m.caseInsensitive[strings.ToUpper(name)] = name
	}
	return m
}

func sortedKeys(m map[string]*Accessor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Type returns the introspected type
func (m *Metadata) Type() reflect.Type {
	return m.typ
}

// ReadableNames returns the names of all properties with a getter
func (m *Metadata) ReadableNames() []string {
	names := make([]string, len(m.readable))
	copy(names, m.readable)
	return names
}

// WritableNames returns the names of all properties with a setter
func (m *Metadata) WritableNames() []string {
	names := make([]string, len(m.writable))
	copy(names, m.writable)
	return names
}

// GetterAccessor returns the accessor that reads the property
func (m *Metadata) GetterAccessor(property string) (*Accessor, error) {
	getter, ok := m.getters[property]
	if !ok {
		return nil, m.noSuchAccessor(property, "getter")
	}
	return getter, nil
}

// SetterAccessor returns the accessor that writes the property
func (m *Metadata) SetterAccessor(property string) (*Accessor, error) {
	setter, ok := m.setters[property]
	if !ok {
		return nil, m.noSuchAccessor(property, "setter")
	}
	return setter, nil
}

// GetterType returns the type a property is read as
func (m *Metadata) GetterType(property string) (reflect.Type, error) {
	getter, err := m.GetterAccessor(property)
	if err != nil {
		return nil, err
	}
	return getter.typ, nil
}

// SetterType returns the type a property is written as
func (m *Metadata) SetterType(property string) (reflect.Type, error) {
	setter, err := m.SetterAccessor(property)
	if err != nil {
		return nil, err
	}
	return setter.typ, nil
}

// HasGetter checks if the property is readable
func (m *Metadata) HasGetter(property string) bool {
	_, ok := m.getters[property]
	return ok
}

// HasSetter checks if the property is writable
func (m *Metadata) HasSetter(property string) bool {
	_, ok := m.setters[property]
	return ok
}

// CanonicalName finds the declared spelling of a property name, ignoring case
func (m *Metadata) CanonicalName(name string) (string, bool) {
	canonical, ok := m.caseInsensitive[strings.ToUpper(name)]
	return canonical, ok
}

// HasDefaultConstructor checks if new instances can be built without arguments
func (m *Metadata) HasDefaultConstructor() bool {
	return m.constructor != nil
}

// DefaultConstructor returns the zero-argument constructor
func (m *Metadata) DefaultConstructor() (*Constructor, error) {
	if m.constructor == nil {
		return nil, newError(KindNoDefaultConstructor, "", m.typ, "type cannot be instantiated without arguments")
	}
	return m.constructor, nil
}

func (m *Metadata) noSuchAccessor(property, kind string) error {
	return newError(KindNoSuchAccessor, property, m.typ, "no %s", kind)
}
