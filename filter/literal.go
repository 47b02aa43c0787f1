// SPDX-License-Identifier: MIT

package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLiteral indicates that a textual literal could not be parsed.
var ErrMalformedLiteral = errors.New("filter: malformed literal")

const (
	pathSep   = "/"
	argsOpen  = "["
	argsClose = "]"
	argsSep   = ","
)

// Literal is a single piece of observable state: a slash-separated path
// (functor) with optional arguments, e.g. first/sub1[1,2].
type Literal struct {
	Path string
	Args []string
}

// L is shorthand for constructing a Literal.
func L(path string, args ...string) Literal {
	return Literal{Path: path, Args: args}
}

// String renders the canonical form path[arg1,arg2]. Literals without
// arguments render as path[].
func (l Literal) String() string {
	return l.Path + argsOpen + strings.Join(l.Args, argsSep) + argsClose
}

// Segments splits the path into its non-empty components.
func (l Literal) Segments() []string {
	return splitPath(l.Path)
}

// ParseLiteral is the inverse of Literal.String. A missing argument list is
// accepted ("foo" == "foo[]"); whitespace around arguments is trimmed.
//
// Errors:
//   - ErrMalformedLiteral on empty paths, unbalanced brackets or a TermSeparator.
func ParseLiteral(s string) (Literal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, TermSeparator) {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}
	open := strings.Index(s, argsOpen)
	if open < 0 {
		if s == "" || strings.Contains(s, argsClose) {
			return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
		}

		return Literal{Path: s}, nil
	}
	if !strings.HasSuffix(s, argsClose) || open == 0 {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}

	path := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	if strings.ContainsAny(inner, argsOpen+argsClose) {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedLiteral, s)
	}

	lit := Literal{Path: path}
	if strings.TrimSpace(inner) == "" {
		return lit, nil
	}
	for _, arg := range strings.Split(inner, argsSep) {
		lit.Args = append(lit.Args, strings.TrimSpace(arg))
	}

	return lit, nil
}

func splitPath(p string) []string {
	parts := strings.Split(p, pathSep)
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}

	return out
}
