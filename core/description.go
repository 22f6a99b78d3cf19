package core

import (
	"fmt"
	"strings"
)

// TokenKind identifies the variant of a Token.
type TokenKind int

const (
	// TokenKindLiteral is plain text matched exactly.
	TokenKindLiteral TokenKind = iota + 1
	// TokenKindPattern is a start-anchored regular expression.
	TokenKindPattern
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindLiteral:
		return "literal"
	case TokenKindPattern:
		return "pattern"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// TokenSpec is the uncompiled, storable form of a Token.
type TokenSpec struct {
	Kind TokenKind
	Text string
}

// ParseDescription parses the description syntax into token specs.
//
// Plain text becomes literal tokens and text inside braces becomes a pattern
// token, e.g. "parake{^e+}t". Outside braces, \{ \} and \\ escape the next
// character. Inside braces, balanced braces (regex quantifiers such as {2}),
// character classes and backslash escapes are kept verbatim in the pattern
// source, so "x{^[}]}" is a literal "x" followed by the pattern "^[}]".
func ParseDescription(s string) ([]TokenSpec, error) {
	var (
		specs []TokenSpec
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			specs = append(specs, TokenSpec{Kind: TokenKindLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '\\':
			if i+1 == len(runes) {
				return nil, malformed("trailing escape at offset %d", i)
			}
			i++
			lit.WriteRune(runes[i])
		case '}':
			return nil, malformed("unbalanced '}' at offset %d", i)
		case '{':
			flush()
			end, src, err := scanPattern(runes, i)
			if err != nil {
				return nil, err
			}
			specs = append(specs, TokenSpec{Kind: TokenKindPattern, Text: src})
			i = end
		default:
			lit.WriteRune(r)
		}
	}
	flush()
	return specs, nil
}

// scanPattern reads a braced pattern starting at runes[start] == '{'.
// It returns the index of the closing brace and the pattern source.
// Braces inside a character class such as [{}] do not count toward nesting.
func scanPattern(runes []rune, start int) (int, string, error) {
	var src strings.Builder
	depth := 0
	class := -1 // index of the open '[' while inside a class
	for i := start + 1; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 == len(runes) {
				return 0, "", malformed("trailing escape at offset %d", i)
			}
			src.WriteRune(r)
			i++
			src.WriteRune(runes[i])
			continue
		case class >= 0:
			// A ']' right after '[' or '[^' is a member, not the end.
			if r == ']' && i > class+1 && !(i == class+2 && runes[class+1] == '^') {
				class = -1
			}
		case r == '[':
			class = i
		case r == '{':
			depth++
		case r == '}':
			if depth == 0 {
				if src.Len() == 0 {
					return 0, "", malformed("empty pattern at offset %d", start)
				}
				return i, src.String(), nil
			}
			depth--
		}
		src.WriteRune(r)
	}
	return 0, "", malformed("unterminated pattern at offset %d", start)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrValidation, ErrMalformedDescription, fmt.Sprintf(format, args...))
}

// FormatDescription renders token specs back into the description syntax.
func FormatDescription(specs []TokenSpec) string {
	var b strings.Builder
	for _, spec := range specs {
		if spec.Kind == TokenKindPattern {
			b.WriteByte('{')
			b.WriteString(spec.Text)
			b.WriteByte('}')
			continue
		}
		for _, r := range spec.Text {
			if r == '\\' || r == '{' || r == '}' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CompileDescription turns token specs into a Sequence, compiling patterns.
func CompileDescription(specs []TokenSpec) (Sequence, error) {
	seq := make(Sequence, 0, len(specs))
	for i, spec := range specs {
		switch spec.Kind {
		case TokenKindLiteral:
			seq = append(seq, Literal(spec.Text))
		case TokenKindPattern:
			p, err := NewPattern(spec.Text)
			if err != nil {
				return nil, err
			}
			seq = append(seq, p)
		default:
			return nil, fmt.Errorf("%w: token %d has kind %v", ErrInvalidToken, i, spec.Kind)
		}
	}
	return seq, nil
}

// CompileString parses and compiles a description in one step.
func CompileString(description string) (Sequence, error) {
	specs, err := ParseDescription(description)
	if err != nil {
		return nil, err
	}
	return CompileDescription(specs)
}

// MustCompileString is like CompileString but panics on error.
func MustCompileString(description string) Sequence {
	seq, err := CompileString(description)
	if err != nil {
		panic(fmt.Sprintf("core: MustCompileString(%q): %v", description, err))
	}
	return seq
}
