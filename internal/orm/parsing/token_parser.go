package parsing

import (
	"strings"
)

// escapeChar marks the delimiter that follows it as literal text
const escapeChar = '\\'

// TokenHandler turns the body of a placeholder into its replacement text
type TokenHandler interface {
	HandleToken(content string) string
}

// TokenHandlerFunc adapts a plain function to TokenHandler
type TokenHandlerFunc func(content string) string

// HandleToken calls f(content)
func (f TokenHandlerFunc) HandleToken(content string) string {
	return f(content)
}

// TokenParser replaces open...close placeholders in text using a handler.
// A TokenParser holds no state between calls and may be shared.
type TokenParser struct {
	open    string
	close   string
	handler TokenHandler
}

// NewTokenParser creates a parser for the given delimiters
func NewTokenParser(open, close string, handler TokenHandler) *TokenParser {
	return &TokenParser{
		open:    open,
		close:   close,
		handler: handler,
	}
}

// Substitute replaces every placeholder in text with handler's result
func Substitute(text, open, close string, handler TokenHandler) string {
	return NewTokenParser(open, close, handler).Parse(text)
}

// Parse substitutes all placeholders in text.
//
// An open delimiter preceded by a backslash is emitted literally without the
// backslash. Inside a placeholder, an escaped close delimiter becomes part of
// the body. An open delimiter with no closing delimiter after it leaves the
// rest of the text untouched.
func (p *TokenParser) Parse(text string) string {
	if text == "" {
		return ""
	}
	if p.open == "" || p.close == "" {
		return text
	}

	start := strings.Index(text, p.open)
	if start == -1 {
		return text
	}

	var out strings.Builder
	var body strings.Builder
	out.Grow(len(text))
	offset := 0

	for start > -1 {
		// a backslash already consumed as part of a delimiter escapes nothing
		if start > offset && text[start-1] == escapeChar {
			out.WriteString(text[offset : start-1])
			out.WriteString(p.open)
			offset = start + len(p.open)
			start = indexFrom(text, p.open, offset)
			continue
		}

		body.Reset()
		out.WriteString(text[offset:start])
		offset = start + len(p.open)

		end := indexFrom(text, p.close, offset)
		for end > -1 {
			if end > offset && text[end-1] == escapeChar {
				body.WriteString(text[offset : end-1])
				body.WriteString(p.close)
				offset = end + len(p.close)
				end = indexFrom(text, p.close, offset)
				continue
			}
			body.WriteString(text[offset:end])
			break
		}

		if end == -1 {
			out.WriteString(text[start:])
			offset = len(text)
		} else {
			out.WriteString(p.handle(body.String()))
			offset = end + len(p.close)
		}
		start = indexFrom(text, p.open, offset)
	}

	if offset < len(text) {
		out.WriteString(text[offset:])
	}
	return out.String()
}

func (p *TokenParser) handle(content string) string {
	if p.handler == nil {
		return p.open + content + p.close
	}
	return p.handler.HandleToken(content)
}

// indexFrom is strings.Index starting at byte offset from
func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i == -1 {
		return -1
	}
	return from + i
}
