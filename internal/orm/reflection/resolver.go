package reflection

import (
	"reflect"
)

// conflicts groups accessor candidates by property name, keeping the order in
// which properties were first seen
type conflicts struct {
	order  []string
	byName map[string][]Method
}

func newConflicts() *conflicts {
	return &conflicts{byName: make(map[string][]Method)}
}

func (c *conflicts) add(property string, m Method) {
	if _, exists := c.byName[property]; !exists {
		c.order = append(c.order, property)
	}
	c.byName[property] = append(c.byName[property], m)
}

func (b *builder) addGetMethods(methods []Method) error {
	getters := newConflicts()
	for _, m := range methods {
		if len(m.Params) != 0 || len(m.Results) != 1 {
			continue
		}
		if name, ok := getterProperty(m.Name); ok {
			getters.add(name, m)
		}
	}
	return b.resolveGetterConflicts(getters)
}

// resolveGetterConflicts picks one getter per property. Several candidates
// appear when an embedding type redeclares a getter with another result
// type; the one returning the more specific type wins.
func (b *builder) resolveGetterConflicts(getters *conflicts) error {
	for _, property := range getters.order {
		candidates := getters.byName[property]
		winner := candidates[0]
		winnerType := winner.Results[0]

		for _, m := range candidates[1:] {
			methodType := m.Results[0]
			switch {
			case methodType == winnerType:
				return ambiguousGetter(property, candidates[0], winnerType, methodType)
			case winnerType.AssignableTo(methodType):
				// current winner already returns the narrower type
			case methodType.AssignableTo(winnerType):
				winner = m
				winnerType = methodType
			default:
				return ambiguousGetter(property, candidates[0], winnerType, methodType)
			}
		}
		b.addGetMethod(property, winner)
	}
	return nil
}

func ambiguousGetter(property string, first Method, a, b reflect.Type) error {
	return newError(KindAmbiguousAccessor, property, first.Declaring,
		"getters return '%s' and '%s'", a, b)
}

func (b *builder) addGetMethod(property string, m Method) {
	if !isValidPropertyName(property) {
		return
	}
	b.getters[property] = &Accessor{
		kind:  MethodGet,
		owner: b.t,
		name:  m.Name,
		path:  m.Path,
		typ:   m.Results[0],
	}
}

func (b *builder) addSetMethods(methods []Method) error {
	setters := newConflicts()
	for _, m := range methods {
		if len(m.Params) != 1 {
			continue
		}
		if name, ok := setterProperty(m.Name); ok {
			setters.add(name, m)
		}
	}
	return b.resolveSetterConflicts(setters)
}

// resolveSetterConflicts prefers the setter whose parameter matches the
// resolved getter type. Otherwise candidates are narrowed pairwise in
// collection order; once a pair fails, later candidates can only win by an
// exact getter match, so the outcome depends on enumeration order.
func (b *builder) resolveSetterConflicts(setters *conflicts) error {
	for _, property := range setters.order {
		candidates := setters.byName[property]

		var getterType reflect.Type
		if getter, ok := b.getters[property]; ok {
			getterType = getter.typ
		}

		var match *Method
		var failure error
		for i := range candidates {
			setter := &candidates[i]
			if getterType != nil && setter.Params[0] == getterType {
				match = setter
				break
			}
			if failure == nil {
				better, err := pickBetterSetter(match, setter, property)
				if err != nil {
					match = nil
					failure = err
					continue
				}
				match = better
			}
		}

		if match == nil {
			return failure
		}
		b.addSetMethod(property, *match)
	}
	return nil
}

// pickBetterSetter keeps the setter with the narrower parameter type. With
// identical parameter types the earlier, more deeply embedding declaration
// is kept.
func pickBetterSetter(current, candidate *Method, property string) (*Method, error) {
	if current == nil {
		return candidate, nil
	}
	currentType := current.Params[0]
	candidateType := candidate.Params[0]
	switch {
	case currentType == candidateType:
		return current, nil
	case candidateType.AssignableTo(currentType):
		return candidate, nil
	case currentType.AssignableTo(candidateType):
		return current, nil
	}
	return nil, newError(KindAmbiguousAccessor, property, candidate.Declaring,
		"setters take '%s' and '%s'", currentType, candidateType)
}

func (b *builder) addSetMethod(property string, m Method) {
	if !isValidPropertyName(property) {
		return
	}
	b.setters[property] = &Accessor{
		kind:  MethodSet,
		owner: b.t,
		name:  m.Name,
		path:  m.Path,
		typ:   m.Params[0],
	}
}

// addFields covers fields that have no accessor method, walking the type
// and then its ancestors
func (b *builder) addFields() error {
	return walkHierarchy(b.d, func(d TypeDescriptor) error {
		for _, f := range d.DeclaredFields() {
			if !f.Accessible {
				ok, err := d.TryForceAccess(&f.Member)
				if err != nil {
					return introspectionFailure(err, f.Name, d.Type())
				}
				if !ok {
					continue
				}
			}

			property := decapitalize(f.Name)
			if _, exists := b.setters[property]; !exists && !f.Constant {
				b.addField(property, f, FieldSet, b.setters)
			}
			if _, exists := b.getters[property]; !exists {
				b.addField(property, f, FieldGet, b.getters)
			}
		}
		return nil
	})
}

func (b *builder) addField(property string, f Field, kind AccessorKind, into map[string]*Accessor) {
	if !isValidPropertyName(property) {
		return
	}
	into[property] = &Accessor{
		kind:  kind,
		owner: b.t,
		name:  f.Name,
		path:  f.Path,
		typ:   f.Type,
	}
}
