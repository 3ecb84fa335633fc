package convert

import (
	"strings"

	"github.com/dumpconv/dumpconv/internal/domain"
)

// Emitter renders field declarations as macro invocations.
type Emitter struct {
	macros domain.MacroNames
}

// NewEmitter fills any blank macro name with its default.
func NewEmitter(macros domain.MacroNames) Emitter {
	defaults := domain.DefaultMacros()
	if macros.Standard == "" {
		macros.Standard = defaults.Standard
	}
	if macros.Vector == "" {
		macros.Vector = defaults.Vector
	}
	if macros.BitField == "" {
		macros.BitField = defaults.BitField
	}
	if macros.Enum == "" {
		macros.Enum = defaults.Enum
	}
	return Emitter{macros: macros}
}

// Emit writes exactly one line. Offsets, arities and widths are copied as
// they were written in the dump so output is byte-for-byte reproducible.
func (e Emitter) Emit(indent string, f domain.FieldDeclaration, kind domain.FieldKind, mappedType string) string {
	args := []string{f.OffsetLiteral, mappedType, f.Name}
	switch kind {
	case domain.KindVector:
		args = append(args, f.ArityText)
	case domain.KindBitField:
		args = append(args, f.BitWidthText)
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(e.macros.For(kind))
	b.WriteByte('(')
	b.WriteString(strings.Join(args, ", "))
	b.WriteString(");")
	return b.String()
}
