package reflection

import (
	"reflect"
	"runtime"
)

// generatedFile is the file name the runtime reports for compiler-generated code
const generatedFile = "<autogenerated>"

// reflectDescriptor adapts the reflect package to TypeDescriptor
type reflectDescriptor struct {
	t      reflect.Type
	path   []int
	policy AccessPolicy
}

// Describe returns a TypeDescriptor for t backed by the reflect package.
// Pointer types are described by their element type.
func Describe(t reflect.Type, policy AccessPolicy) (TypeDescriptor, error) {
	if t == nil {
		return nil, newError(KindIntrospectionFailure, "", nil, "cannot describe a nil type")
	}
	return &reflectDescriptor{t: indirectType(t), policy: policy}, nil
}

func (d *reflectDescriptor) Type() reflect.Type {
	return d.t
}

// DeclaredMethods returns the exported methods callable on the type. Methods
// with value receivers come from the value method set, pointer receivers
// from the pointer method set.
func (d *reflectDescriptor) DeclaredMethods() []Method {
	if d.t.Kind() == reflect.Interface {
		methods := make([]Method, 0, d.t.NumMethod())
		for i := 0; i < d.t.NumMethod(); i++ {
			m := d.t.Method(i)
			if !m.IsExported() {
				continue
			}
			methods = append(methods, d.method(m, 0, nil))
		}
		return methods
	}

	promoted := d.embeddedMethodNames()
	seen := make(map[string]bool)
	var methods []Method
	for i := 0; i < d.t.NumMethod(); i++ {
		m := d.t.Method(i)
		seen[m.Name] = true
		methods = append(methods, d.method(m, 1, promoted))
	}

	ptr := reflect.PointerTo(d.t)
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		if seen[m.Name] {
			continue
		}
		methods = append(methods, d.method(m, 1, promoted))
	}
	return methods
}

func (d *reflectDescriptor) method(m reflect.Method, skip int, promoted map[string]bool) Method {
	ft := m.Type
	params := make([]reflect.Type, 0, ft.NumIn())
	for i := skip; i < ft.NumIn(); i++ {
		params = append(params, ft.In(i))
	}
	results := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		results = append(results, ft.Out(i))
	}

	return Method{
		Member: Member{
			Name:       m.Name,
			Declaring:  d.t,
			Accessible: true,
		},
		Params:    params,
		Results:   results,
		Synthetic: promoted[m.Name] && isGenerated(m.Func),
		Path:      d.path,
	}
}

// embeddedMethodNames collects the names of methods an embedded field could
// promote into the type
func (d *reflectDescriptor) embeddedMethodNames() map[string]bool {
	names := make(map[string]bool)
	if d.t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < d.t.NumField(); i++ {
		f := d.t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		for j := 0; j < ft.NumMethod(); j++ {
			names[ft.Method(j).Name] = true
		}
	}
	return names
}

// isGenerated reports whether fn is a compiler-generated wrapper, such as the
// one emitted for a method promoted through an embedded field
func isGenerated(fn reflect.Value) bool {
	if !fn.IsValid() {
		return false
	}
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}
	file, _ := f.FileLine(f.Entry())
	return file == generatedFile
}

// DeclaredFields returns the non-embedded fields of a struct type
func (d *reflectDescriptor) DeclaredFields() []Field {
	if d.t.Kind() != reflect.Struct {
		return nil
	}
	fields := make([]Field, 0, d.t.NumField())
	for i := 0; i < d.t.NumField(); i++ {
		f := d.t.Field(i)
		if f.Anonymous {
			continue
		}
		fields = append(fields, Field{
			Member: Member{
				Name:       f.Name,
				Declaring:  d.t,
				Accessible: f.IsExported(),
			},
			Type: f.Type,
			Path: childPath(d.path, i),
		})
	}
	return fields
}

// DeclaredConstructors returns the zero-value constructor every concrete
// type has
func (d *reflectDescriptor) DeclaredConstructors() []Constructor {
	if d.t.Kind() == reflect.Interface {
		return nil
	}
	t := d.t
	return []Constructor{{
		Member: Member{
			Name:       t.String(),
			Declaring:  t,
			Accessible: true,
		},
		Build: func() reflect.Value { return reflect.New(t) },
	}}
}

func (d *reflectDescriptor) Ancestors() []TypeDescriptor {
	return d.embedded(false)
}

func (d *reflectDescriptor) Capabilities() []TypeDescriptor {
	return d.embedded(true)
}

func (d *reflectDescriptor) embedded(interfaces bool) []TypeDescriptor {
	if d.t.Kind() != reflect.Struct {
		return nil
	}
	var out []TypeDescriptor
	for i := 0; i < d.t.NumField(); i++ {
		f := d.t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := indirectType(f.Type)
		if (ft.Kind() == reflect.Interface) != interfaces {
			continue
		}
		out = append(out, &reflectDescriptor{
			t:      ft,
			path:   childPath(d.path, i),
			policy: d.policy,
		})
	}
	return out
}

func (d *reflectDescriptor) TryForceAccess(m *Member) (bool, error) {
	if m.Accessible {
		return true, nil
	}
	switch d.policy {
	case AccessForce:
		m.Accessible = true
		m.Forced = true
		return true, nil
	case AccessStrict:
		return false, newError(KindIntrospectionFailure, m.Name, m.Declaring,
			"member is not exported and access policy is %s", d.policy)
	default:
		return false, nil
	}
}

func childPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
