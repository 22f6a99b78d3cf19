// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Token is an atomic match unit or, before expansion, an author-level one.
// It is implemented only by Literal and *Pattern.
type Token interface {
	Kind() TokenKind
	String() string
	token()
}

// Sequence is an ordered list of tokens describing an entry.
// Literals may hold more than one character until the sequence is expanded.
type Sequence []Token

// Literal matches its text exactly, case-sensitively, one code point at a time.
type Literal string

// Kind returns TokenKindLiteral.
func (l Literal) Kind() TokenKind { return TokenKindLiteral }

// String returns the literal text.
func (l Literal) String() string { return string(l) }

// Len returns the number of code points in the literal.
func (l Literal) Len() int { return len([]rune(string(l))) }

func (Literal) token() {}

// Pattern is a regular expression that only ever matches at the left edge
// of the remaining query text.
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// NewPattern compiles source into a Pattern.
// The source must begin with a start-of-text anchor (^ or \A).
func NewPattern(source string) (*Pattern, error) {
	if !IsAnchored(source) {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidation, ErrUnanchoredPattern, source)
	}
	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidPattern, err)
	}
	return &Pattern{source: source, re: re}, nil
}

// MustPattern is like NewPattern but panics if the source is rejected.
func MustPattern(source string) *Pattern {
	p, err := NewPattern(source)
	if err != nil {
		panic(fmt.Sprintf("core: MustPattern(%q): %v", source, err))
	}
	return p
}

// Kind returns TokenKindPattern.
func (p *Pattern) Kind() TokenKind { return TokenKindPattern }

// Source returns the text the pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// String returns the pattern source wrapped in braces, as written in descriptions.
func (p *Pattern) String() string { return "{" + p.source + "}" }

func (*Pattern) token() {}

// valid reports whether p was built by NewPattern.
func (p *Pattern) valid() bool {
	return p != nil && p.re != nil
}

// match returns the number of code points matched at the start of query.
func (p *Pattern) match(query []rune) (int, bool) {
	m, err := p.re.FindRunesMatch(query)
	if err != nil || m == nil || m.Index != 0 {
		return 0, false
	}
	return m.Length, true
}

// IsAnchored reports whether a pattern source starts with a start-of-text anchor.
func IsAnchored(source string) bool {
	return strings.HasPrefix(source, "^") || strings.HasPrefix(source, `\A`)
}

// Consume matches tok against the front of query and returns what is left.
//
// An empty query is always consumed. A literal longer than the query
// consumes it when the literal starts with the whole query, so a query may
// end partway through a literal.
func Consume(tok Token, query []rune) ([]rune, bool) {
	if len(query) == 0 {
		return query, true
	}
	switch t := tok.(type) {
	case Literal:
		i := 0
		for _, r := range string(t) {
			if i == len(query) {
				break
			}
			if r != query[i] {
				return nil, false
			}
			i++
		}
		return query[i:], true
	case *Pattern:
		if !t.valid() {
			return nil, false
		}
		n, ok := t.match(query)
		if !ok {
			return nil, false
		}
		return query[n:], true
	}
	return nil, false
}
