// Package typemap resolves raw types found in reflection dumps to the
// canonical, namespaced names expected by the reflection library.
//
// Resolution order for a normalized base type:
//
//  1. exact match in the table
//  2. primitive keyword, returned unqualified
//  3. enum wrapper such as TEnumAsByte<E>, resolved as its inner type
//  4. template decomposition, resolving the template name and each argument
//  5. identity fallback, reported as unmapped
//
// The Mapper never mutates state during resolution; unmapped names travel
// back with each Resolution so callers can aggregate them however they like.
package typemap

import (
	"strconv"
	"strings"

	"github.com/dumpconv/dumpconv/internal/domain"
)

// Source records which step produced a Resolution.
type Source int

const (
	SourceTable Source = iota
	SourcePrimitive
	SourceTemplate
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceTable:
		return "table"
	case SourcePrimitive:
		return "primitive"
	case SourceTemplate:
		return "template"
	default:
		return "fallback"
	}
}

func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Resolution is the outcome of mapping one type.
type Resolution struct {
	Type     string   `json:"type"`
	Source   Source   `json:"source"`
	Unmapped []string `json:"unmapped,omitempty"`
}

var primitives = map[string]bool{
	"bool": true, "float": true, "double": true, "void": true,
	"char": true, "wchar_t": true, "char8_t": true, "char16_t": true, "char32_t": true,
	"signed char": true, "unsigned char": true,
	"short": true, "unsigned short": true,
	"int": true, "unsigned int": true, "unsigned": true,
	"long": true, "unsigned long": true,
	"long long": true, "unsigned long long": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"size_t": true, "intptr_t": true, "uintptr_t": true,
}

// Mapper looks raw types up in an injected table.
type Mapper struct {
	table    map[string]string
	wrappers map[string]bool
}

// New builds a Mapper. Later entries override earlier ones with the same raw
// name. wrappers names single-argument enum wrapper templates, which are
// dropped wherever they appear, including inside template arguments.
func New(entries []domain.TypeEntry, wrappers []string) *Mapper {
	table := make(map[string]string, len(entries))
	for _, e := range entries {
		table[collapse(e.Raw)] = e.Canonical()
	}
	m := &Mapper{table: table, wrappers: make(map[string]bool, len(wrappers))}
	for _, w := range wrappers {
		m.wrappers[strings.TrimSpace(w)] = true
	}
	return m
}

// FromConfig builds a Mapper from cfg's type table and enum wrappers.
func FromConfig(cfg domain.Config) *Mapper {
	return New(cfg.TypeTable(), cfg.Enums.Wrappers)
}

// Len returns the number of distinct table entries.
func (m *Mapper) Len() int { return len(m.table) }

// Resolve maps a normalized base type, one with no const, pointer or
// reference qualifiers.
func (m *Mapper) Resolve(raw string) Resolution {
	key := collapse(raw)
	if mapped, ok := m.table[key]; ok {
		return Resolution{Type: mapped, Source: SourceTable}
	}
	if primitives[key] {
		return Resolution{Type: key, Source: SourcePrimitive}
	}
	if base, args, ok := SplitTemplate(key); ok {
		if len(args) == 1 && m.wrappers[base] {
			return m.ResolveExpr(args[0])
		}
		return m.resolveTemplate(base, args)
	}
	return Resolution{Type: key, Source: SourceFallback, Unmapped: []string{key}}
}

// ResolveExpr maps a full type expression. Qualifiers are stripped before
// lookup and reattached around the result, so namespaces only ever apply to
// the base type.
func (m *Mapper) ResolveExpr(expr string) Resolution {
	e := ParseExpr(expr)
	r := m.Resolve(e.Base)
	r.Type = e.Qualify(r.Type)
	return r
}

func (m *Mapper) resolveTemplate(base string, args []string) Resolution {
	head := m.Resolve(base)
	res := Resolution{Source: SourceTemplate, Unmapped: head.Unmapped}

	parts := make([]string, len(args))
	for i, arg := range args {
		if isNumber(arg) {
			parts[i] = arg
			continue
		}
		r := m.ResolveExpr(arg)
		parts[i] = r.Type
		res.Unmapped = append(res.Unmapped, r.Unmapped...)
	}
	res.Type = head.Type + "<" + strings.Join(parts, ", ") + ">"
	return res
}

// Expr is a type expression split into its base type and qualifiers.
type Expr struct {
	Base       string
	Const      bool
	Qualifiers string
}

var leadingKeywords = []string{"const", "class", "struct", "enum", "union", "typename"}

// ParseExpr splits a declared type such as "const class AActor*" into
// Base "AActor", Const true and Qualifiers "*".
func ParseExpr(s string) Expr {
	var e Expr
	s = strings.TrimSpace(s)

strip:
	for {
		for _, kw := range leadingKeywords {
			rest, ok := strings.CutPrefix(s, kw)
			if ok && rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
				if kw == "const" {
					e.Const = true
				}
				s = strings.TrimSpace(rest)
				continue strip
			}
		}
		break
	}

	var quals string
trailing:
	for {
		s = strings.TrimRight(s, " \t")
		switch {
		case strings.HasSuffix(s, "*"), strings.HasSuffix(s, "&"):
			quals = s[len(s)-1:] + quals
			s = s[:len(s)-1]
		case len(s) > 5 && strings.HasSuffix(s, "const") && strings.ContainsAny(s[len(s)-6:len(s)-5], " \t*&"):
			quals = " const" + quals
			s = s[:len(s)-5]
		default:
			break trailing
		}
	}

	e.Base = collapse(s)
	e.Qualifiers = quals
	return e
}

// Qualify reattaches the expression's qualifiers to a resolved base type.
func (e Expr) Qualify(t string) string {
	if e.Const {
		t = "const " + t
	}
	return t + e.Qualifiers
}

// SplitTemplate splits "Base<A, B<C>>" into "Base" and ["A", "B<C>"]. It
// fails on unbalanced brackets or empty arguments.
func SplitTemplate(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '<')
	if open <= 0 || !strings.HasSuffix(s, ">") {
		return "", nil, false
	}
	base := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	var args []string
	depth, start := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
			if depth < 0 {
				return "", nil, false
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}
	args = append(args, strings.TrimSpace(inner[start:]))

	for _, a := range args {
		if a == "" {
			return "", nil, false
		}
	}
	return base, args, true
}

func isNumber(s string) bool {
	_, err := strconv.ParseUint(s, 0, 64)
	return err == nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
