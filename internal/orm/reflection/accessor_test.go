package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessors(t *testing.T, typ reflect.Type, property string) (*Accessor, *Accessor) {
	t.Helper()
	meta := metadataFor(t, typ, AccessForce)
	getter, err := meta.GetterAccessor(property)
	require.NoError(t, err)
	setter, err := meta.SetterAccessor(property)
	require.NoError(t, err)
	return getter, setter
}

func TestAccessor_MethodInvoke(t *testing.T) {
	getter, setter := accessors(t, typeOf[Account](), "userId")

	account := &Account{}
	_, err := setter.Invoke(account, int64(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), account.GetUserId())

	got, err := getter.Invoke(account)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	t.Run("pointer receiver getter on a value", func(t *testing.T) {
		got, err := getter.Invoke(Account{userId: 7})
		require.NoError(t, err)
		assert.Equal(t, int64(7), got)
	})

	t.Run("value receiver getter", func(t *testing.T) {
		nameGetter, _ := accessors(t, typeOf[Account](), "name")
		got, err := nameGetter.Invoke(Account{name: "ada"})
		require.NoError(t, err)
		assert.Equal(t, "ada", got)
	})

	t.Run("reflect value target", func(t *testing.T) {
		target := &Account{}
		_, err := setter.Invoke(reflect.ValueOf(target).Elem(), int64(9))
		require.NoError(t, err)
		assert.Equal(t, int64(9), target.GetUserId())

		got, err := getter.Invoke(reflect.ValueOf(target))
		require.NoError(t, err)
		assert.Equal(t, int64(9), got)
	})
}

func TestAccessor_FieldInvoke(t *testing.T) {
	t.Run("exported field", func(t *testing.T) {
		getter, setter := accessors(t, typeOf[Account](), "email")
		assert.Equal(t, FieldGet, getter.Kind())
		assert.Equal(t, FieldSet, setter.Kind())

		account := &Account{}
		_, err := setter.Invoke(account, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", account.Email)

		got, err := getter.Invoke(*account)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", got)
	})

	t.Run("unexported field", func(t *testing.T) {
		meta := metadataFor(t, typeOf[Account](), AccessForce)
		setter, err := meta.SetterAccessor("active")
		require.NoError(t, err)

		account := &Account{}
		_, err = setter.Invoke(account, true)
		require.NoError(t, err)
		assert.True(t, account.IsActive())
	})

	t.Run("nil for a nilable field", func(t *testing.T) {
		_, setter := accessors(t, typeOf[Account](), "tags")

		account := &Account{Tags: []string{"a"}}
		_, err := setter.Invoke(account, nil)
		require.NoError(t, err)
		assert.Nil(t, account.Tags)
	})
}

func TestAccessor_SetterError(t *testing.T) {
	getter, setter := accessors(t, typeOf[Temperature](), "celsius")

	temp := &Temperature{}
	_, err := setter.Invoke(temp, 21.5)
	require.NoError(t, err)

	_, err = setter.Invoke(temp, -300.0)
	assert.ErrorIs(t, err, errBelowAbsoluteZero)

	got, err := getter.Invoke(temp)
	require.NoError(t, err)
	assert.Equal(t, 21.5, got)
}

func TestAccessor_Panics(t *testing.T) {
	meta := metadataFor(t, typeOf[Fragile](), AccessForce)
	getter, err := meta.GetterAccessor("value")
	require.NoError(t, err)

	got, err := getter.Invoke(Fragile{})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvocationFailed)
	assert.Contains(t, err.Error(), "boom")
}

func TestAccessor_InvalidTargets(t *testing.T) {
	getter, setter := accessors(t, typeOf[Account](), "userId")

	tests := []struct {
		name   string
		invoke func() (any, error)
	}{
		{"nil target", func() (any, error) { return getter.Invoke(nil) }},
		{"nil pointer", func() (any, error) { return getter.Invoke((*Account)(nil)) }},
		{"wrong type", func() (any, error) { return getter.Invoke(&Temperature{}) }},
		{"getter with argument", func() (any, error) { return getter.Invoke(&Account{}, 1) }},
		{"setter without argument", func() (any, error) { return setter.Invoke(&Account{}) }},
		{"setter on a value", func() (any, error) { return setter.Invoke(Account{}, int64(1)) }},
		{"wrong argument type", func() (any, error) { return setter.Invoke(&Account{}, "one") }},
		{"nil for a value type", func() (any, error) { return setter.Invoke(&Account{}, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.invoke()
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidTarget)
		})
	}
}

func TestAccessorKind(t *testing.T) {
	assert.Equal(t, "method-get", MethodGet.String())
	assert.Equal(t, "method-set", MethodSet.String())
	assert.Equal(t, "field-get", FieldGet.String())
	assert.Equal(t, "field-set", FieldSet.String())
	assert.Equal(t, "unknown", AccessorKind(99).String())

	assert.True(t, MethodGet.IsGetter())
	assert.True(t, FieldGet.IsGetter())
	assert.False(t, MethodSet.IsGetter())
	assert.False(t, FieldSet.IsGetter())
}
