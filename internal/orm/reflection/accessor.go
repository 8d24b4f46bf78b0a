package reflection

import (
	"fmt"
	"reflect"
	"unsafe"
)

// AccessorKind identifies how an Accessor reaches its property
type AccessorKind uint8

const (
	// MethodGet calls a GetX or IsX method
	MethodGet AccessorKind = iota
	// MethodSet calls a SetX method
	MethodSet
	// FieldGet reads a struct field
	FieldGet
	// FieldSet writes a struct field
	FieldSet
)

// String returns a human-readable name for the kind
func (k AccessorKind) String() string {
	switch k {
	case MethodGet:
		return "method-get"
	case MethodSet:
		return "method-set"
	case FieldGet:
		return "field-get"
	case FieldSet:
		return "field-set"
	default:
		return "unknown"
	}
}

// IsGetter reports whether the kind reads a property
func (k AccessorKind) IsGetter() bool {
	return k == MethodGet || k == FieldGet
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Accessor reads or writes one property of an instance
type Accessor struct {
	kind  AccessorKind
	owner reflect.Type
	// name is the method or field name
	name string
	path []int
	typ  reflect.Type
}

// Kind returns how the accessor reaches its property
func (a *Accessor) Kind() AccessorKind {
	return a.kind
}

// Name returns the underlying method or field name
func (a *Accessor) Name() string {
	return a.name
}

// Type returns the property value type
func (a *Accessor) Type() reflect.Type {
	return a.typ
}

// Invoke runs the accessor against target. Getters take no arguments and
// return the property value; setters take the new value and return nil.
// Target may be a value, a pointer, or a reflect.Value; setters need a
// pointer or another addressable value.
func (a *Accessor) Invoke(target any, args ...any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %s %s: %v", ErrInvocationFailed, a.kind, a.name, r)
		}
	}()

	v, ok := target.(reflect.Value)
	if !ok {
		v = reflect.ValueOf(target)
	}
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: nil target for %s", ErrInvalidTarget, a.name)
	}
	if err := a.checkTarget(v); err != nil {
		return nil, err
	}

	want := 0
	if !a.kind.IsGetter() {
		want = 1
	}
	if len(args) != want {
		return nil, fmt.Errorf("%w: %s %s expects %d argument(s), got %d",
			ErrInvalidTarget, a.kind, a.name, want, len(args))
	}

	v, err = root(v, !a.kind.IsGetter())
	if err != nil {
		return nil, err
	}

	switch a.kind {
	case MethodGet:
		fn, err := a.method(v, false)
		if err != nil {
			return nil, err
		}
		return fn.Call(nil)[0].Interface(), nil

	case MethodSet:
		fn, err := a.method(v, true)
		if err != nil {
			return nil, err
		}
		arg, err := argument(args[0], a.typ)
		if err != nil {
			return nil, err
		}
		return nil, resultError(fn.Call([]reflect.Value{arg}))

	case FieldGet:
		f, err := walk(v, a.path, false)
		if err != nil {
			return nil, err
		}
		return f.Interface(), nil

	case FieldSet:
		f, err := walk(v, a.path, true)
		if err != nil {
			return nil, err
		}
		arg, err := argument(args[0], a.typ)
		if err != nil {
			return nil, err
		}
		f.Set(arg)
		return nil, nil
	}

	return nil, fmt.Errorf("%w: unknown accessor kind %d", ErrInvalidTarget, a.kind)
}

func (a *Accessor) checkTarget(v reflect.Value) error {
	if a.owner == nil {
		return nil
	}
	t := v.Type()
	if a.owner.Kind() == reflect.Interface && t.Implements(a.owner) {
		return nil
	}
	if indirectType(t) == a.owner {
		return nil
	}
	return fmt.Errorf("%w: %s accessor %s called on %s", ErrInvalidTarget, a.owner, a.name, t)
}

// method resolves the bound method value on the receiver at the end of path
func (a *Accessor) method(v reflect.Value, write bool) (reflect.Value, error) {
	recv, err := walk(v, a.path, write)
	if err != nil {
		return reflect.Value{}, err
	}
	if recv.Kind() == reflect.Interface && recv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: nil %s for %s", ErrInvalidTarget, recv.Type(), a.name)
	}

	fn := recv.MethodByName(a.name)
	if !fn.IsValid() && recv.Kind() != reflect.Pointer && recv.CanAddr() {
		fn = recv.Addr().MethodByName(a.name)
	}
	if !fn.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s has no method %s", ErrInvalidTarget, recv.Type(), a.name)
	}
	return fn, nil
}

// root makes the target usable: pointers are kept, values are copied into
// addressable storage for reads and rejected for writes
func root(v reflect.Value, write bool) (reflect.Value, error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrInvalidTarget, v.Type())
		}
		return v, nil
	}
	if v.CanAddr() {
		return v, nil
	}
	if write {
		return reflect.Value{}, fmt.Errorf("%w: cannot set a property on a %s value, pass a pointer", ErrInvalidTarget, v.Type())
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c, nil
}

// walk follows a field index path. Nil embedded pointers are allocated on
// writes and reported on reads.
func walk(v reflect.Value, path []int, write bool) (reflect.Value, error) {
	for _, i := range path {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !write || !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("%w: nil embedded %s", ErrInvalidTarget, v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = expose(v.Field(i))
	}
	return v, nil
}

// expose lifts the read-only flag reflect puts on unexported fields
func expose(v reflect.Value) reflect.Value {
	if v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func argument(arg any, t reflect.Type) (reflect.Value, error) {
	v, ok := arg.(reflect.Value)
	if !ok {
		if arg == nil {
			switch t.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				return reflect.Zero(t), nil
			}
			return reflect.Value{}, fmt.Errorf("%w: cannot assign nil to %s", ErrInvalidTarget, t)
		}
		v = reflect.ValueOf(arg)
	}
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", ErrInvalidTarget, v.Type(), t)
	}
	return v, nil
}

// resultError returns the trailing error result of a call, if any
func resultError(out []reflect.Value) error {
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if !last.Type().Implements(errorType) {
		return nil
	}
	switch last.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if last.IsNil() {
			return nil
		}
	}
	return last.Interface().(error)
}
