package domain

import "fmt"

// FieldKind selects which macro a converted field is rendered with.
type FieldKind int

const (
	KindStandard FieldKind = iota
	KindVector
	KindBitField
	KindEnum
)

// AllKinds lists every field kind in report order.
var AllKinds = []FieldKind{KindStandard, KindVector, KindBitField, KindEnum}

func (k FieldKind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindVector:
		return "vector"
	case KindBitField:
		return "bitfield"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

func (k FieldKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// FieldDeclaration is one field extracted from a dump line.
type FieldDeclaration struct {
	// RawType is the type expression as declared, without const, elaborated
	// keywords or pointer/reference qualifiers.
	RawType string `json:"raw_type"`
	// BaseType is the lookup key handed to the type mapper. It differs from
	// RawType when a container or enum wrapper has been unwrapped.
	BaseType   string `json:"base_type"`
	Const      bool   `json:"const,omitempty"`
	Qualifiers string `json:"qualifiers,omitempty"`
	Name       string `json:"name"`

	Arity     uint64 `json:"arity,omitempty"`
	ArityText string `json:"arity_text,omitempty"`

	Offset        uint64 `json:"offset"`
	OffsetLiteral string `json:"offset_literal"`
	Size          uint64 `json:"size"`
	SizeLiteral   string `json:"size_literal"`

	BitWidth     uint64 `json:"bit_width,omitempty"`
	BitWidthText string `json:"bit_width_text,omitempty"`
}

// HasBitWidth reports whether the declaration carried an explicit width.
func (f FieldDeclaration) HasBitWidth() bool { return f.BitWidthText != "" }

// PassReason explains why a line was reproduced verbatim.
type PassReason int

const (
	ReasonNoMatch PassReason = iota
	ReasonMalformed
	ReasonIgnored
)

func (r PassReason) String() string {
	switch r {
	case ReasonNoMatch:
		return "no-match"
	case ReasonMalformed:
		return "malformed"
	case ReasonIgnored:
		return "ignored"
	default:
		return fmt.Sprintf("PassReason(%d)", int(r))
	}
}

func (r PassReason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// ConvertedLine is either a MatchedField or a PassThrough.
type ConvertedLine interface {
	Text() string
	convertedLine()
}

// MatchedField is a field declaration rewritten as a macro invocation.
type MatchedField struct {
	Field      FieldDeclaration `json:"field"`
	Kind       FieldKind        `json:"kind"`
	MappedType string           `json:"mapped_type"`
	Unmapped   []string         `json:"unmapped,omitempty"`
	Rendered   string           `json:"rendered"`
}

func (m MatchedField) Text() string { return m.Rendered }
func (MatchedField) convertedLine()  {}

// PassThrough is a line copied to the output unchanged.
type PassThrough struct {
	Original string     `json:"original"`
	Reason   PassReason `json:"reason"`
}

func (p PassThrough) Text() string { return p.Original }
func (PassThrough) convertedLine()  {}
