package reflection

import (
	"errors"
	"reflect"
	"strings"
)

// walkHierarchy visits the descriptor and everything it inherits from,
// breadth first so shallower declarations are seen before deeper ones.
// Each type is visited once, which also stops recursive embedding.
func walkHierarchy(root TypeDescriptor, visit func(TypeDescriptor) error) error {
	seen := make(map[reflect.Type]bool)
	queue := []TypeDescriptor{root}
	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]
		if seen[d.Type()] {
			continue
		}
		seen[d.Type()] = true

		if err := visit(d); err != nil {
			return err
		}
		queue = append(queue, d.Ancestors()...)
	}
	return nil
}

// methodCollector keeps one method per signature, in insertion order
type methodCollector struct {
	seen    map[string]struct{}
	methods []Method
}

// collectMethods returns the unique, non-synthetic methods of a type, its
// capabilities, and its ancestors
func collectMethods(root TypeDescriptor) ([]Method, error) {
	c := &methodCollector{seen: make(map[string]struct{})}
	err := walkHierarchy(root, func(d TypeDescriptor) error {
		if err := c.addUnique(d, d.DeclaredMethods()); err != nil {
			return err
		}
		for _, capability := range d.Capabilities() {
			if err := c.addUnique(capability, capability.DeclaredMethods()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.methods, nil
}

func (c *methodCollector) addUnique(d TypeDescriptor, methods []Method) error {
	for _, m := range methods {
		if m.Synthetic {
			continue
		}
		sig := signature(m)
		if _, exists := c.seen[sig]; exists {
			continue
		}
		if !m.Accessible {
			ok, err := d.TryForceAccess(&m.Member)
			if err != nil {
				return introspectionFailure(err, m.Name, d.Type())
			}
			if !ok {
				continue
			}
		}
		c.seen[sig] = struct{}{}
		c.methods = append(c.methods, m)
	}
	return nil
}

// signature renders results, name and parameters, e.g. "string#GetName" or
// "#SetName:string"
func signature(m Method) string {
	var b strings.Builder
	for i, r := range m.Results {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(typeName(r))
	}
	b.WriteByte('#')
	b.WriteString(m.Name)
	for i, p := range m.Params {
		if i == 0 {
			b.WriteByte(':')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(typeName(p))
	}
	return b.String()
}

// typeName qualifies named types with their package path
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func introspectionFailure(err error, member string, t reflect.Type) error {
	var reflErr *ReflectionError
	if errors.As(err, &reflErr) {
		return err
	}
	return &ReflectionError{
		Kind:     KindIntrospectionFailure,
		Property: member,
		Type:     t,
		Err:      err,
	}
}
