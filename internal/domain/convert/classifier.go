package convert

import "regexp"

// fieldPattern matches one field declaration from a reflection dump:
//
//	class UTimelineComponent* getUpTimeline; // 0x05F8 (size: 0x8)
//	int32_t Flags : 3; // 0x0010 (size: 0x4)
//	FVector Locations[4]; // 0x0020 (size: 0x30)
//	uint8 bActive; // 0x0030 (size: 0x1) (bits: 1)
//	AActor* const Owner; // 0x0038 (size: 0x8)
//
// Template arguments are kept as one opaque token. Anything after the size
// annotation other than a bit-width annotation or whitespace fails the match.
var fieldPattern = regexp.MustCompile(`^(?P<indent>[ \t]*)` +
	`(?P<const>const\s+)?` +
	`(?:(?:enum\s+(?:class|struct)|class|struct|enum|union)\s+)?` +
	`(?P<type>(?:(?:unsigned|signed|long|short)\s+)*[A-Za-z_][\w:]*(?:\s*<[^;/]*>)?)` +
	`(?:\[(?P<typearr>[^\]\s]*)\])?` +
	`\s*(?P<quals>(?:[*&]\s*|const\s+)*)` +
	`\b(?P<name>[A-Za-z_]\w*)` +
	`(?:\s*\[(?P<arr>[^\]\s]*)\])?` +
	`(?:\s*:\s*(?P<bits>\d+))?` +
	`\s*;\s*//\s*(?P<offset>0[xX][0-9A-Fa-f]+)` +
	`\s*\(\s*size:\s*(?P<size>0[xX][0-9A-Fa-f]+)\s*\)` +
	`(?:\s*\(\s*bits:\s*(?P<tbits>\d+)\s*\))?` +
	`\s*$`)

var (
	groupIndent   = fieldPattern.SubexpIndex("indent")
	groupConst    = fieldPattern.SubexpIndex("const")
	groupType     = fieldPattern.SubexpIndex("type")
	groupTypeArr  = fieldPattern.SubexpIndex("typearr")
	groupQuals    = fieldPattern.SubexpIndex("quals")
	groupName     = fieldPattern.SubexpIndex("name")
	groupArr      = fieldPattern.SubexpIndex("arr")
	groupBits     = fieldPattern.SubexpIndex("bits")
	groupOffset   = fieldPattern.SubexpIndex("offset")
	groupSize     = fieldPattern.SubexpIndex("size")
	groupTailBits = fieldPattern.SubexpIndex("tbits")
)

// Match holds the structural parts of a field-declaration line. Empty
// strings mean the part was absent.
type Match struct {
	Indent     string
	Const      bool
	Type       string
	Qualifiers string
	Name       string
	// Array is the text inside a [N] suffix on the name or the type.
	Array string
	// HasArray distinguishes "[]" from no brackets at all.
	HasArray bool
	BitWidth string
	// TrailingBitWidth comes from a "(bits: N)" annotation after the size.
	TrailingBitWidth string
	Offset           string
	Size             string
}

// Classify reports whether line is a field declaration and, if so, returns
// its parts. Lines that merely resemble a declaration do not match.
func Classify(line string) (Match, bool) {
	loc := fieldPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	group := func(i int) (string, bool) {
		if loc[2*i] < 0 {
			return "", false
		}
		return line[loc[2*i]:loc[2*i+1]], true
	}
	text := func(i int) string {
		s, _ := group(i)
		return s
	}

	m := Match{
		Indent:           text(groupIndent),
		Type:             text(groupType),
		Qualifiers:       text(groupQuals),
		Name:             text(groupName),
		BitWidth:         text(groupBits),
		TrailingBitWidth: text(groupTailBits),
		Offset:           text(groupOffset),
		Size:             text(groupSize),
	}
	_, m.Const = group(groupConst)

	nameArr, onName := group(groupArr)
	typeArr, onType := group(groupTypeArr)
	switch {
	case onName && onType:
		// Arrays on both the type and the name are not part of the dump
		// grammar.
		return Match{}, false
	case onName:
		m.Array, m.HasArray = nameArr, true
	case onType:
		m.Array, m.HasArray = typeArr, true
	}

	return m, true
}
