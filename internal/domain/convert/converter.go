// Package convert rewrites field declarations from reflection header dumps
// into field macros. It is pure: a Converter reads nothing from disk and
// keeps no state between calls, so one instance can serve many workers.
package convert

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
)

// Converter chains classifier, builder, mapper and emitter.
type Converter struct {
	builder *Builder
	mapper  *typemap.Mapper
	emitter Emitter
	ignored map[string]bool
}

// New builds a Converter from a validated config.
func New(cfg domain.Config) (*Converter, error) {
	enums, err := NewEnumPredicate(cfg.Enums)
	if err != nil {
		return nil, fmt.Errorf("building enum predicate: %w", err)
	}

	ignored := make(map[string]bool, len(cfg.IgnoredTypes))
	for _, name := range cfg.IgnoredTypes {
		ignored[name] = true
	}

	return &Converter{
		builder: NewBuilder(enums, cfg.FixedArrays, cfg.StripNameSuffixes),
		mapper:  typemap.FromConfig(cfg),
		emitter: NewEmitter(cfg.Macros),
		ignored: ignored,
	}, nil
}

// Mapper exposes the type table the converter resolves against.
func (c *Converter) Mapper() *typemap.Mapper { return c.mapper }

// ConvertLine converts a single line given without its terminator.
func (c *Converter) ConvertLine(line string) domain.ConvertedLine {
	m, ok := Classify(line)
	if !ok {
		return domain.PassThrough{Original: line, Reason: domain.ReasonNoMatch}
	}

	f, kind, err := c.builder.Build(m)
	if err != nil {
		return domain.PassThrough{Original: line, Reason: domain.ReasonMalformed}
	}

	if c.isIgnored(f.RawType) {
		return domain.PassThrough{Original: line, Reason: domain.ReasonIgnored}
	}

	res := c.mapper.Resolve(f.BaseType)
	mapped := typemap.Expr{Const: f.Const, Qualifiers: f.Qualifiers}.Qualify(res.Type)

	return domain.MatchedField{
		Field:      f,
		Kind:       kind,
		MappedType: mapped,
		Unmapped:   res.Unmapped,
		Rendered:   c.emitter.Emit(m.Indent, f, kind, mapped),
	}
}

// ConvertFile converts every line of src, one output line per input line.
func (c *Converter) ConvertFile(src domain.SourceFile) (domain.OutputFile, domain.FileStats) {
	out := domain.OutputFile{
		Path:  src.Path,
		BOM:   src.BOM,
		Lines: make([]domain.Line, len(src.Lines)),
	}
	stats := domain.FileStats{Lines: len(src.Lines)}

	for i, l := range src.Lines {
		cl := c.ConvertLine(l.Text)
		out.Lines[i] = domain.Line{Text: cl.Text(), EOL: l.EOL}

		switch v := cl.(type) {
		case domain.MatchedField:
			stats.Fields.Add(v.Kind, 1)
			for _, name := range v.Unmapped {
				if !slices.Contains(stats.Unmapped, name) {
					stats.Unmapped = append(stats.Unmapped, name)
				}
			}
		case domain.PassThrough:
			if v.Reason == domain.ReasonIgnored {
				stats.Ignored++
			}
			if v.Reason != domain.ReasonNoMatch {
				stats.Notes = append(stats.Notes, domain.LineNote{Line: i + 1, Reason: v.Reason})
			}
		}
	}
	slices.Sort(stats.Unmapped)

	return out, stats
}

var typeToken = regexp.MustCompile(`[A-Za-z_][\w:]*`)

func (c *Converter) isIgnored(rawType string) bool {
	if len(c.ignored) == 0 {
		return false
	}
	for _, tok := range typeToken.FindAllString(rawType, -1) {
		if c.ignored[tok] {
			return true
		}
		// ETimelineDirection::Type is ignored when ETimelineDirection is.
		for _, seg := range strings.Split(tok, "::") {
			if c.ignored[seg] {
				return true
			}
		}
	}
	return false
}
