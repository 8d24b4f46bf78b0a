package reflection

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	getterPrefixes = []string{"Get", "Is"}
	setterPrefixes = []string{"Set"}
)

// Names that are never exposed as properties
const (
	serialVersionName = "serialVersionUID"
	typeDescriptorName = "class"
)

// getterProperty derives the property name of a GetX or IsX method
func getterProperty(method string) (string, bool) {
	return accessorProperty(method, getterPrefixes)
}

// setterProperty derives the property name of a SetX method
func setterProperty(method string) (string, bool) {
	return accessorProperty(method, setterPrefixes)
}

// accessorProperty strips an accessor prefix. The remainder must start with
// an upper-case letter, so "Get" alone or "Issue" are not accessors.
func accessorProperty(method string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		rest, ok := strings.CutPrefix(method, prefix)
		if !ok || rest == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) {
			return decapitalize(rest), true
		}
	}
	return "", false
}

// decapitalize lower-cases the first letter unless the name starts with two
// upper-case letters, so "UserID" becomes "userID" while "URL" stays "URL"
func decapitalize(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return name
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isValidPropertyName(name string) bool {
	return !(strings.HasPrefix(name, "$") ||
		strings.HasPrefix(name, "_") ||
		name == serialVersionName ||
		name == typeDescriptorName)
}
