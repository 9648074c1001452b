// Package confstr parses client configuration strings of the form
//
//	service::key1=value1;key2=value2;
//
// The service name and keys are lowercase identifiers. Every value is
// terminated by a semicolon, including the last; a literal semicolon inside
// a value is escaped by doubling it (";;"). Pair order is preserved and
// duplicate keys are rejected. Parse errors carry the byte offset of the
// problem in the input.
package confstr

import (
	"strings"

	"github.com/wippyai/ucsbuf/errors"
)

// Pair is a single key=value entry in input order.
type Pair struct {
	Key   string
	Value string
}

// ConfStr is a parsed configuration string.
type ConfStr struct {
	service string
	pairs   []Pair
	byKey   map[string]string
}

// Parse parses a configuration string. On failure it returns an
// *errors.Error whose Index is the byte offset of the offending character.
func Parse(s string) (*ConfStr, error) {
	i := 0
	for i < len(s) && s[i] != ':' {
		if !identChar(s[i], i == 0) {
			return nil, errors.Syntax(i, "unexpected character %q in service name", s[i])
		}
		i++
	}
	if i == 0 {
		return nil, errors.Syntax(0, "empty service name")
	}
	if i+1 >= len(s) || s[i+1] != ':' {
		return nil, errors.Syntax(i, "expected %q after service name", "::")
	}
	c := &ConfStr{
		service: s[:i],
		byKey:   make(map[string]string),
	}
	i += 2

	for i < len(s) {
		keyStart := i
		for i < len(s) && s[i] != '=' {
			if !identChar(s[i], i == keyStart) {
				return nil, errors.Syntax(i, "unexpected character %q in key", s[i])
			}
			i++
		}
		if i == keyStart {
			return nil, errors.Syntax(i, "empty key")
		}
		if i == len(s) {
			return nil, errors.Syntax(i, "expected %q after key", "=")
		}
		key := s[keyStart:i]
		i++

		var val strings.Builder
		terminated := false
		for i < len(s) {
			ch := s[i]
			if ch == ';' {
				if i+1 < len(s) && s[i+1] == ';' {
					val.WriteByte(';')
					i += 2
					continue
				}
				i++
				terminated = true
				break
			}
			if ch < 0x20 || ch == 0x7F {
				return nil, errors.Syntax(i, "control character 0x%02X in value", ch)
			}
			val.WriteByte(ch)
			i++
		}
		if !terminated {
			return nil, errors.Syntax(len(s), "unterminated value, expected %q", ";")
		}

		if _, dup := c.byKey[key]; dup {
			return nil, errors.DuplicateKey(keyStart, key)
		}
		c.pairs = append(c.pairs, Pair{Key: key, Value: val.String()})
		c.byKey[key] = val.String()
	}
	return c, nil
}

// identChar reports whether ch may appear in a service name or key.
// Identifiers start with a lowercase letter and continue with lowercase
// letters, digits or underscores.
func identChar(ch byte, first bool) bool {
	if ch >= 'a' && ch <= 'z' {
		return true
	}
	if first {
		return false
	}
	return ch >= '0' && ch <= '9' || ch == '_'
}

// Service returns the service name before the "::" separator.
func (c *ConfStr) Service() string {
	return c.service
}

// Get returns the value for key and whether the key was present.
func (c *ConfStr) Get(key string) (string, bool) {
	v, ok := c.byKey[key]
	return v, ok
}

// Pairs returns the key=value entries in input order. The returned slice is
// a copy.
func (c *ConfStr) Pairs() []Pair {
	out := make([]Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// Len returns the number of pairs.
func (c *ConfStr) Len() int {
	return len(c.pairs)
}
