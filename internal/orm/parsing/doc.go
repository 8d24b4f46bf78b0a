// Package parsing substitutes ${...} placeholders in text.
//
// TokenParser finds placeholders and hands their bodies to a TokenHandler.
// VariableResolver is the handler for variable stores, with optional
// "${key:default}" syntax. Unresolvable placeholders are left in place;
// substitution never fails.
package parsing
