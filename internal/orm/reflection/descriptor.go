package reflection

import (
	"reflect"
)

// AccessPolicy controls how members that are not exported are treated
type AccessPolicy int

const (
	// AccessForce exposes unexported fields through unsafe pointers
	AccessForce AccessPolicy = iota
	// AccessExported silently skips unexported members
	AccessExported
	// AccessStrict fails introspection when an unexported member is found
	AccessStrict
)

// String returns the configuration name of the policy
func (p AccessPolicy) String() string {
	switch p {
	case AccessForce:
		return "force"
	case AccessExported:
		return "exported"
	case AccessStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseAccessPolicy parses a configuration name into an AccessPolicy
func ParseAccessPolicy(s string) (AccessPolicy, bool) {
	switch s {
	case "", "force":
		return AccessForce, true
	case "exported":
		return AccessExported, true
	case "strict":
		return AccessStrict, true
	default:
		return AccessForce, false
	}
}

// Member holds what every introspected member has in common
type Member struct {
	Name       string
	Declaring  reflect.Type
	Accessible bool
	// Forced is set once TryForceAccess exposed a member that was not accessible
	Forced bool
}

// Method is an accessor candidate exposed by a TypeDescriptor
type Method struct {
	Member
	// Params excludes the receiver
	Params  []reflect.Type
	Results []reflect.Type
	// Synthetic marks compiler-generated wrappers
	Synthetic bool
	// Path is the embedded field index path from the root type to the receiver
	Path []int
}

// Field is a struct field exposed by a TypeDescriptor
type Field struct {
	Member
	Type reflect.Type
	// Path is the full field index path from the root type
	Path []int
	// Constant fields are never writable
	Constant bool
}

// Constructor produces new instances of a type
type Constructor struct {
	Member
	Params []reflect.Type
	Build  func() reflect.Value
}

// New builds a new instance
func (c *Constructor) New() any {
	return c.Build().Interface()
}

// TypeDescriptor is the introspection capability the collector and resolver
// work against
type TypeDescriptor interface {
	Type() reflect.Type
	DeclaredMethods() []Method
	DeclaredFields() []Field
	DeclaredConstructors() []Constructor
	// Ancestors are the types whose members this type inherits
	Ancestors() []TypeDescriptor
	// Capabilities are the interfaces this type carries
	Capabilities() []TypeDescriptor
	// TryForceAccess attempts to make an inaccessible member usable. It returns
	// false when the member must be skipped and an error when introspection
	// has to stop.
	TryForceAccess(m *Member) (bool, error)
}
