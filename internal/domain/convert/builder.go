package convert

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
)

// Builder turns classifier matches into field declarations and picks the
// macro kind. It holds no mutable state and is safe for concurrent use.
type Builder struct {
	enums         *EnumPredicate
	fixedArrays   map[string]bool
	stripSuffixes bool
}

func NewBuilder(enums *EnumPredicate, fixedArrays []string, stripSuffixes bool) *Builder {
	b := &Builder{
		enums:         enums,
		fixedArrays:   make(map[string]bool, len(fixedArrays)),
		stripSuffixes: stripSuffixes,
	}
	for _, name := range fixedArrays {
		b.fixedArrays[strings.TrimSpace(name)] = true
	}
	return b
}

var errZeroCount = errors.New("must be greater than zero")

// Build validates every numeric part of m and assigns a FieldKind by
// priority: bit width, then array arity, then enum, then standard. Any
// malformed number is an error so the caller can pass the line through.
func (b *Builder) Build(m Match) (domain.FieldDeclaration, domain.FieldKind, error) {
	offset, err := parseHex(m.Offset)
	if err != nil {
		return domain.FieldDeclaration{}, 0, fmt.Errorf("offset %q: %w", m.Offset, err)
	}
	size, err := parseHex(m.Size)
	if err != nil {
		return domain.FieldDeclaration{}, 0, fmt.Errorf("size %q: %w", m.Size, err)
	}

	rawType := strings.Join(strings.Fields(m.Type), " ")
	f := domain.FieldDeclaration{
		RawType:       rawType,
		BaseType:      rawType,
		Const:         m.Const,
		Qualifiers:    normalizeQualifiers(m.Qualifiers),
		Name:          m.Name,
		Offset:        offset,
		OffsetLiteral: m.Offset,
		Size:          size,
		SizeLiteral:   m.Size,
	}
	if b.stripSuffixes {
		f.Name = CleanName(f.Name)
	}

	if m.HasArray {
		n, err := parseCount(m.Array)
		if err != nil {
			return domain.FieldDeclaration{}, 0, fmt.Errorf("array arity %q: %w", m.Array, err)
		}
		f.Arity, f.ArityText = n, m.Array
	} else if f.Qualifiers == "" {
		if elem, n, text, ok := b.fixedArray(rawType); ok {
			e := typemap.ParseExpr(elem)
			f.BaseType = e.Base
			f.Const = f.Const || e.Const
			f.Qualifiers = e.Qualifiers
			f.Arity, f.ArityText = n, text
		}
	}

	width := m.BitWidth
	if m.TrailingBitWidth != "" {
		if width != "" && width != m.TrailingBitWidth {
			return domain.FieldDeclaration{}, 0, fmt.Errorf("conflicting bit widths %s and %s", width, m.TrailingBitWidth)
		}
		width = m.TrailingBitWidth
	}
	if width != "" {
		n, err := strconv.ParseUint(width, 10, 64)
		if err == nil && n == 0 {
			err = errZeroCount
		}
		if err != nil {
			return domain.FieldDeclaration{}, 0, fmt.Errorf("bit width %q: %w", width, err)
		}
		f.BitWidth, f.BitWidthText = n, width
	}

	inner, isEnum := b.enums.Match(f.BaseType)
	f.BaseType = inner

	switch {
	case f.HasBitWidth():
		return f, domain.KindBitField, nil
	case f.Arity > 0:
		return f, domain.KindVector, nil
	case isEnum:
		return f, domain.KindEnum, nil
	default:
		return f, domain.KindStandard, nil
	}
}

// normalizeQualifiers squeezes "* *" to "**" and keeps one space before a
// trailing const, as in "* const".
func normalizeQualifiers(q string) string {
	if strings.TrimSpace(q) == "" {
		return ""
	}
	return typemap.ParseExpr("T " + q).Qualifiers
}

// fixedArray recognizes container tokens such as TStaticArray<T, N>.
func (b *Builder) fixedArray(t string) (elem string, n uint64, text string, ok bool) {
	name, args, split := typemap.SplitTemplate(t)
	if !split || len(args) != 2 || !b.fixedArrays[name] {
		return "", 0, "", false
	}
	n, err := parseCount(args[1])
	if err != nil {
		return "", 0, "", false
	}
	return args[0], n, args[1], true
}

var (
	guidSuffix    = regexp.MustCompile(`_\d+_[A-Fa-f0-9]{32}$`)
	numericSuffix = regexp.MustCompile(`_\d+$`)
)

// CleanName strips the _<n>_<GUID> and _<n> suffixes the blueprint compiler
// appends to variable names. Names that would become empty are kept.
func CleanName(name string) string {
	cleaned := guidSuffix.ReplaceAllString(name, "")
	cleaned = numericSuffix.ReplaceAllString(cleaned, "")
	if cleaned == "" {
		return name
	}
	return cleaned
}

func parseHex(lit string) (uint64, error) {
	digits := lit
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	return strconv.ParseUint(digits, 16, 64)
}

func parseCount(s string) (uint64, error) {
	var (
		n   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err = parseHex(s)
	} else {
		n, err = strconv.ParseUint(s, 10, 64)
	}
	if err == nil && n == 0 {
		err = errZeroCount
	}
	return n, err
}
