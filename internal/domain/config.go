package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Config holds the conversion settings loaded from .dumpconv.yaml or
// .dumpconv.toml.
type Config struct {
	Extensions        []string         `yaml:"extensions,omitempty"          toml:"extensions,omitempty"          json:"extensions,omitempty"`
	Exclude           []string         `yaml:"exclude,omitempty"             toml:"exclude,omitempty"             json:"exclude,omitempty"`
	Workers           int              `yaml:"workers,omitempty"             toml:"workers,omitempty"             json:"workers,omitempty"`
	ReplaceDefaults   bool             `yaml:"replace_defaults,omitempty"    toml:"replace_defaults,omitempty"    json:"replace_defaults,omitempty"`
	Namespaces        []NamespaceGroup `yaml:"namespaces,omitempty"          toml:"namespaces,omitempty"          json:"namespaces,omitempty"`
	Types             []TypeEntry      `yaml:"types,omitempty"               toml:"types,omitempty"               json:"types,omitempty"`
	IgnoredTypes      []string         `yaml:"ignored_types,omitempty"       toml:"ignored_types,omitempty"       json:"ignored_types,omitempty"`
	FixedArrays       []string         `yaml:"fixed_arrays,omitempty"        toml:"fixed_arrays,omitempty"        json:"fixed_arrays,omitempty"`
	Enums             EnumConfig       `yaml:"enums,omitempty"               toml:"enums,omitempty"               json:"enums,omitempty"`
	Macros            MacroNames       `yaml:"macros,omitempty"              toml:"macros,omitempty"              json:"macros,omitempty"`
	StripNameSuffixes bool             `yaml:"strip_name_suffixes,omitempty" toml:"strip_name_suffixes,omitempty" json:"strip_name_suffixes,omitempty"`
}

// NamespaceGroup maps many raw type names into one namespace unchanged.
type NamespaceGroup struct {
	Namespace string   `yaml:"namespace" toml:"namespace" json:"namespace"`
	Types     []string `yaml:"types"     toml:"types"     json:"types"`
}

// TypeEntry maps one raw type name to a canonical name.
type TypeEntry struct {
	Raw       string `yaml:"raw"                 toml:"raw"                 json:"raw"`
	Name      string `yaml:"name,omitempty"      toml:"name,omitempty"      json:"name,omitempty"`
	Namespace string `yaml:"namespace,omitempty" toml:"namespace,omitempty" json:"namespace,omitempty"`
}

// Canonical returns the fully qualified output name for the entry.
func (e TypeEntry) Canonical() string {
	name := e.Name
	if name == "" {
		name = e.Raw
	}
	if e.Namespace == "" {
		return name
	}
	return e.Namespace + "::" + name
}

// EnumConfig drives the enum-kind predicate.
type EnumConfig struct {
	// Wrappers are single-argument templates whose argument is an enum,
	// such as TEnumAsByte<EFoo>.
	Wrappers []string `yaml:"wrappers,omitempty" toml:"wrappers,omitempty" json:"wrappers,omitempty"`
	// Patterns are regular expressions matched against the raw base type.
	Patterns []string `yaml:"patterns,omitempty" toml:"patterns,omitempty" json:"patterns,omitempty"`
	// DisablePrefixConvention turns off treating E-prefixed names as enums.
	DisablePrefixConvention bool `yaml:"disable_prefix_convention,omitempty" toml:"disable_prefix_convention,omitempty" json:"disable_prefix_convention,omitempty"`
}

// MacroNames are the macro identifiers emitted per FieldKind.
type MacroNames struct {
	Standard string `yaml:"standard,omitempty" toml:"standard,omitempty" json:"standard,omitempty"`
	Vector   string `yaml:"vector,omitempty"   toml:"vector,omitempty"   json:"vector,omitempty"`
	BitField string `yaml:"bitfield,omitempty" toml:"bitfield,omitempty" json:"bitfield,omitempty"`
	Enum     string `yaml:"enum,omitempty"     toml:"enum,omitempty"     json:"enum,omitempty"`
}

// For returns the macro name for a kind.
func (m MacroNames) For(k FieldKind) string {
	switch k {
	case KindVector:
		return m.Vector
	case KindBitField:
		return m.BitField
	case KindEnum:
		return m.Enum
	default:
		return m.Standard
	}
}

// UnrealNamespace is the namespace of the reflection library's engine types.
const UnrealNamespace = "RC::Unreal"

// DefaultMacros are the macro names understood by the reflection library.
func DefaultMacros() MacroNames {
	return MacroNames{
		Standard: "FIELD",
		Vector:   "VECTOR_INT_FIELD",
		BitField: "BIT_FIELD",
		Enum:     "ENUM_FIELD",
	}
}

// DefaultConfig returns the built-in table and settings.
func DefaultConfig() Config {
	return Config{
		Extensions: []string{".hpp", ".h"},
		Namespaces: []NamespaceGroup{{
			Namespace: UnrealNamespace,
			Types: []string{
				"FString", "FName", "FText",
				"FVector", "FVector2D", "FVector4", "FRotator", "FQuat", "FTransform",
				"FLinearColor", "FColor",
				"TArray", "TMap", "TSet", "TSubclassOf", "TWeakObjectPtr", "TObjectPtr",
				"UObject", "UClass", "UStruct", "UFunction", "UWorld",
				"AActor", "APawn", "ACharacter", "APlayerController",
				"UActorComponent", "USceneComponent", "UPrimitiveComponent",
				"UStaticMesh", "UStaticMeshComponent", "USkeletalMeshComponent",
				"UTimelineComponent", "UDataTable", "UTexture2D", "UMaterialInterface",
				"USoundBase", "UAudioComponent", "UCurveFloat",
			},
		}},
		Types: []TypeEntry{
			{Raw: "int8", Name: "int8_t"},
			{Raw: "int16", Name: "int16_t"},
			{Raw: "int32", Name: "int32_t"},
			{Raw: "int64", Name: "int64_t"},
			{Raw: "uint8", Name: "uint8_t"},
			{Raw: "uint16", Name: "uint16_t"},
			{Raw: "uint32", Name: "uint32_t"},
			{Raw: "uint64", Name: "uint64_t"},
		},
		IgnoredTypes: []string{
			"FPointerToUberGraphFrame",
			"TextureFilter",
			"ETimelineDirection",
			"ECollisionChannel",
			"FConnectionCallbackProxyOnSuccess",
			"FCheckGeoTrackingAvailabilityAsyncTaskBlueprintProxyOnSuccess",
			"TSoftClassPtr",
			"TSoftObjectPtr",
			"FJSONParserAsyncObjectToStringOnSuccess",
			"FBox",
			"FGuid",
		},
		FixedArrays: []string{"TStaticArray", "std::array"},
		Enums: EnumConfig{
			Wrappers: []string{"TEnumAsByte"},
		},
		Macros: DefaultMacros(),
	}
}

// TypeTable flattens namespace groups and explicit entries into one ordered
// table. Explicit entries come last so they win over group members.
func (c Config) TypeTable() []TypeEntry {
	var out []TypeEntry
	for _, g := range c.Namespaces {
		for _, raw := range g.Types {
			out = append(out, TypeEntry{Raw: raw, Namespace: g.Namespace})
		}
	}
	return append(out, c.Types...)
}

var identPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	for i, g := range c.Namespaces {
		if strings.TrimSpace(g.Namespace) == "" {
			return fmt.Errorf("namespaces[%d].namespace must not be empty", i)
		}
		for _, raw := range g.Types {
			if err := validateRawType(raw); err != nil {
				return fmt.Errorf("namespaces[%d]: %w", i, err)
			}
		}
	}

	for i, e := range c.Types {
		if err := validateRawType(e.Raw); err != nil {
			return fmt.Errorf("types[%d]: %w", i, err)
		}
	}

	for i, name := range c.FixedArrays {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("fixed_arrays[%d] must not be empty", i)
		}
	}

	for i, p := range c.Enums.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("enums.patterns[%d]: %w", i, err)
		}
	}

	macros := []struct{ key, name string }{
		{"standard", c.Macros.Standard},
		{"vector", c.Macros.Vector},
		{"bitfield", c.Macros.BitField},
		{"enum", c.Macros.Enum},
	}
	for _, m := range macros {
		if m.name != "" && !identPattern.MatchString(m.name) {
			return fmt.Errorf("macros.%s %q is not a valid identifier", m.key, m.name)
		}
	}

	return nil
}

func validateRawType(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("raw type must not be empty")
	}
	if strings.ContainsAny(raw, "*&[]") {
		return fmt.Errorf("raw type %q must not carry pointer, reference or array qualifiers", raw)
	}
	return nil
}
