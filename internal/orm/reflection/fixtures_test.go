package reflection

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"time"
)

// Account mixes method-backed and field-backed properties
type Account struct {
	userId int64
	name   string
	Email  string
	active bool
	Tags   []string
}

func (a *Account) GetUserId() int64     { return a.userId }
func (a *Account) SetUserId(id int64)   { a.userId = id }
func (a Account) GetName() string       { return a.name }
func (a *Account) SetName(name string)  { a.name = name }
func (a *Account) IsActive() bool       { return a.active }
func (a *Account) Issue() string        { return "not a getter" }
func (a *Account) Get() string          { return "not a getter either" }
func (a *Account) SetAll(a1, a2 string) {}

// Document and Report exercise setter resolution against a getter type
type Document struct {
	body io.Reader
}

func (d *Document) GetBody() io.Reader  { return d.body }
func (d *Document) SetBody(r io.Reader) { d.body = r }

type Report struct {
	Document
}

func (r *Report) SetBody(b *bytes.Buffer) { r.body = b }

// Base and Derived exercise a covariant getter override
type Base struct {
	body io.Reader
}

func (b *Base) GetBody() io.Reader { return b.body }

type Derived struct {
	Base
	buf *bytes.Buffer
}

func (d *Derived) GetBody() *bytes.Buffer { return d.buf }

// Sink and BufferedSink have setters only
type Sink struct {
	w io.Writer
}

func (s *Sink) SetOutput(w io.Writer) { s.w = w }

type BufferedSink struct {
	Sink
	buf *bytes.Buffer
}

func (s *BufferedSink) SetOutput(b *bytes.Buffer) { s.buf = b }

// counterBase and Counter redeclare a getter with an unrelated type
type counterBase struct{}

func (counterBase) GetCount() int { return 1 }

type Counter struct {
	counterBase
}

func (Counter) GetCount() string { return "one" }

// Flagged has a Get and an Is getter for the same property
type Flagged struct{}

func (Flagged) GetEnabled() bool { return true }
func (Flagged) IsEnabled() bool  { return true }

// labelBase and Labeled have unrelated setters
type labelBase struct{}

func (*labelBase) SetLabel(int) {}

type Labeled struct {
	labelBase
}

func (*Labeled) SetLabel(string) {}

// Versioned declares names that are never properties
type Versioned struct {
	serialVersionUID int64
	_                struct{}
	Value            string
}

func (Versioned) GetClass() string { return "Versioned" }

// Audit and Invoice embed through a pointer
type Audit struct {
	CreatedBy string
}

type Invoice struct {
	*Audit
	Number string
}

// Clock and Scheduler embed an interface
type Clock interface {
	GetNow() time.Time
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) GetNow() time.Time { return c.t }

type Scheduler struct {
	Clock
	Name string
}

// Timestamps and Post promote a getter from an embedded struct
type Timestamps struct {
	created time.Time
}

func (t Timestamps) GetCreated() time.Time { return t.created }

type Post struct {
	Timestamps
	Title string
}

// Temperature has a setter that validates
type Temperature struct {
	celsius float64
}

var errBelowAbsoluteZero = errors.New("below absolute zero")

func (t *Temperature) GetCelsius() float64 { return t.celsius }
func (t *Temperature) SetCelsius(c float64) error {
	if c < -273.15 {
		return errBelowAbsoluteZero
	}
	t.celsius = c
	return nil
}

// Fragile panics when read
type Fragile struct{}

func (Fragile) GetValue() string { panic("boom") }

// Named is an interface type with a property
type Named interface {
	GetName() string
	SetName(string)
}

// Node embeds itself
type Node struct {
	*Node
	Label string
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// fakeDescriptor is a hand-built TypeDescriptor
type fakeDescriptor struct {
	typ          reflect.Type
	methods      []Method
	fields       []Field
	constructors []Constructor
	ancestors    []TypeDescriptor
	capabilities []TypeDescriptor
	force        bool
	forceErr     error
}

func (f *fakeDescriptor) Type() reflect.Type                  { return f.typ }
func (f *fakeDescriptor) DeclaredMethods() []Method           { return f.methods }
func (f *fakeDescriptor) DeclaredFields() []Field             { return f.fields }
func (f *fakeDescriptor) DeclaredConstructors() []Constructor { return f.constructors }
func (f *fakeDescriptor) Ancestors() []TypeDescriptor         { return f.ancestors }
func (f *fakeDescriptor) Capabilities() []TypeDescriptor      { return f.capabilities }

func (f *fakeDescriptor) TryForceAccess(m *Member) (bool, error) {
	if f.forceErr != nil {
		return false, f.forceErr
	}
	if f.force {
		m.Accessible = true
		m.Forced = true
	}
	return f.force, nil
}

func getter(name string, result reflect.Type) Method {
	return Method{
		Member:  Member{Name: name, Accessible: true},
		Results: []reflect.Type{result},
	}
}

func setter(name string, param reflect.Type) Method {
	return Method{
		Member: Member{Name: name, Accessible: true},
		Params: []reflect.Type{param},
	}
}
