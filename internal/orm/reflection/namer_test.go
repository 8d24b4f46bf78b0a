package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetterProperty(t *testing.T) {
	tests := []struct {
		method   string
		expected string
		ok       bool
	}{
		{"GetName", "name", true},
		{"GetUserID", "userID", true},
		{"GetURL", "URL", true},
		{"IsActive", "active", true},
		{"GetX", "x", true},
		{"Get", "", false},
		{"Is", "", false},
		{"Issue", "", false},
		{"Getaway", "", false},
		{"Name", "", false},
		{"SetName", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			name, ok := getterProperty(tt.method)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestSetterProperty(t *testing.T) {
	tests := []struct {
		method   string
		expected string
		ok       bool
	}{
		{"SetName", "name", true},
		{"SetHTTPClient", "HTTPClient", true},
		{"Set", "", false},
		{"Settle", "", false},
		{"GetName", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			name, ok := setterProperty(tt.method)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestDecapitalize(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"Name":   "name",
		"name":   "name",
		"X":      "x",
		"UserID": "userID",
		"URL":    "URL",
		"Ärger":  "ärger",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, decapitalize(input), input)
	}
}

func TestIsValidPropertyName(t *testing.T) {
	assert.True(t, isValidPropertyName("name"))
	assert.True(t, isValidPropertyName("classes"))
	assert.False(t, isValidPropertyName("$ref"))
	assert.False(t, isValidPropertyName("_hidden"))
	assert.False(t, isValidPropertyName("serialVersionUID"))
	assert.False(t, isValidPropertyName("class"))
}
