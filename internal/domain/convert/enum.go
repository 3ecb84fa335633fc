package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
)

// EnumPredicate decides whether a base type is an enum. New enum names are
// registered through config, never through code.
type EnumPredicate struct {
	wrappers map[string]bool
	patterns []*regexp.Regexp
	prefix   bool
}

func NewEnumPredicate(cfg domain.EnumConfig) (*EnumPredicate, error) {
	p := &EnumPredicate{
		wrappers: make(map[string]bool, len(cfg.Wrappers)),
		prefix:   !cfg.DisablePrefixConvention,
	}
	for _, w := range cfg.Wrappers {
		p.wrappers[strings.TrimSpace(w)] = true
	}
	for _, raw := range cfg.Patterns {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling enum pattern %q: %w", raw, err)
		}
		p.patterns = append(p.patterns, re)
	}
	return p, nil
}

// Match reports whether base names an enum. The returned type is base with
// any enum wrapper removed, e.g. TEnumAsByte<EFoo> yields EFoo.
func (p *EnumPredicate) Match(base string) (string, bool) {
	if name, args, ok := typemap.SplitTemplate(base); ok && len(args) == 1 && p.wrappers[name] {
		return typemap.ParseExpr(args[0]).Base, true
	}
	for _, re := range p.patterns {
		if re.MatchString(base) {
			return base, true
		}
	}
	if p.prefix && hasEnumPrefix(base) {
		return base, true
	}
	return base, false
}

// hasEnumPrefix follows the engine convention of naming enums EName, where
// the first camel-case word is a lone "E".
func hasEnumPrefix(name string) bool {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if !identPattern.MatchString(name) {
		return false
	}
	words := camelcase.Split(name)
	return len(words) >= 2 && words[0] == "E"
}

var identPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)
