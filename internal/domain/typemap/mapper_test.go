package typemap_test

import (
	"testing"

	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapper() *typemap.Mapper {
	return typemap.FromConfig(domain.DefaultConfig())
}

func TestMapper_Resolve(t *testing.T) {
	m := newMapper()

	tests := []struct {
		raw      string
		want     string
		source   typemap.Source
		unmapped []string
	}{
		{"UTimelineComponent", "RC::Unreal::UTimelineComponent", typemap.SourceTable, nil},
		{"int32", "int32_t", typemap.SourceTable, nil},
		{"int32_t", "int32_t", typemap.SourcePrimitive, nil},
		{"unsigned   int", "unsigned int", typemap.SourcePrimitive, nil},
		{"bool", "bool", typemap.SourcePrimitive, nil},
		{"TArray<FName>", "RC::Unreal::TArray<RC::Unreal::FName>", typemap.SourceTemplate, nil},
		{"TMap<FName, int32>", "RC::Unreal::TMap<RC::Unreal::FName, int32_t>", typemap.SourceTemplate, nil},
		{"TArray<TWeakObjectPtr<AActor>>", "RC::Unreal::TArray<RC::Unreal::TWeakObjectPtr<RC::Unreal::AActor>>", typemap.SourceTemplate, nil},
		{"TArray<FMystery>", "RC::Unreal::TArray<FMystery>", typemap.SourceTemplate, []string{"FMystery"}},
		{"FInventorySlot", "FInventorySlot", typemap.SourceFallback, []string{"FInventorySlot"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := m.Resolve(tt.raw)
			assert.Equal(t, tt.want, r.Type)
			assert.Equal(t, tt.source, r.Source)
			assert.Equal(t, tt.unmapped, r.Unmapped)
		})
	}
}

func TestMapper_FallbackIsIdentity(t *testing.T) {
	m := typemap.New(nil, nil)
	for _, raw := range []string{"FFoo", "UBP_Door_C", "Game::FThing"} {
		r := m.Resolve(raw)
		assert.Equal(t, raw, r.Type)
		assert.Equal(t, typemap.SourceFallback, r.Source)
	}
}

func TestMapper_ResolveExpr_ReattachesQualifiers(t *testing.T) {
	m := newMapper()

	tests := []struct{ in, want string }{
		{"AActor*", "RC::Unreal::AActor*"},
		{"class AActor*", "RC::Unreal::AActor*"},
		{"const FString&", "const RC::Unreal::FString&"},
		{"UObject**", "RC::Unreal::UObject**"},
		{"AActor* const", "RC::Unreal::AActor* const"},
		{"TArray<class AActor*>", "RC::Unreal::TArray<RC::Unreal::AActor*>"},
		{"TStaticArray<int32, 4>", "TStaticArray<int32_t, 4>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ResolveExpr(tt.in).Type, tt.in)
	}
}

func TestMapper_LaterEntriesWin(t *testing.T) {
	m := typemap.New([]domain.TypeEntry{
		{Raw: "FFoo", Namespace: "A"},
		{Raw: "FFoo", Namespace: "B"},
	}, nil)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "B::FFoo", m.Resolve("FFoo").Type)
}

func TestMapper_NamespacesApplyOnlyToBase(t *testing.T) {
	// The namespace is never glued onto a qualifier.
	r := newMapper().ResolveExpr("const class UWorld* const")
	assert.Equal(t, "const RC::Unreal::UWorld* const", r.Type)
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		in   string
		want typemap.Expr
	}{
		{"AActor", typemap.Expr{Base: "AActor"}},
		{"const class AActor*", typemap.Expr{Base: "AActor", Const: true, Qualifiers: "*"}},
		{"struct FVector&", typemap.Expr{Base: "FVector", Qualifiers: "&"}},
		{"enum EFoo", typemap.Expr{Base: "EFoo"}},
		{"UObject * *", typemap.Expr{Base: "UObject", Qualifiers: "**"}},
		{"constant", typemap.Expr{Base: "constant"}},
		{"FConst", typemap.Expr{Base: "FConst"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typemap.ParseExpr(tt.in), tt.in)
	}
}

func TestSplitTemplate(t *testing.T) {
	base, args, ok := typemap.SplitTemplate("TMap<FName, TArray<int32>>")
	require.True(t, ok)
	assert.Equal(t, "TMap", base)
	assert.Equal(t, []string{"FName", "TArray<int32>"}, args)

	for _, bad := range []string{"FName", "<A>", "TArray<A", "TArray<A>>", "TMap<A, >", "TArray<>"} {
		_, _, ok := typemap.SplitTemplate(bad)
		assert.False(t, ok, bad)
	}
}

func TestMapper_UnwrapsEnumWrappers(t *testing.T) {
	m := newMapper()

	tests := []struct {
		raw      string
		want     string
		unmapped []string
	}{
		{"TEnumAsByte<EFoo>", "EFoo", []string{"EFoo"}},
		{"TArray<TEnumAsByte<EFoo>>", "RC::Unreal::TArray<EFoo>", []string{"EFoo"}},
		{"TMap<FName, TEnumAsByte<enum EFoo>>", "RC::Unreal::TMap<RC::Unreal::FName, EFoo>", []string{"EFoo"}},
		{"TArray<TEnumAsByte<ETimelineDirection::Type>>", "RC::Unreal::TArray<ETimelineDirection::Type>", []string{"ETimelineDirection::Type"}},
	}
	for _, tt := range tests {
		r := m.Resolve(tt.raw)
		assert.Equal(t, tt.want, r.Type, tt.raw)
		assert.Equal(t, tt.unmapped, r.Unmapped, tt.raw)
	}
}

func TestMapper_WrappersAreConfigured(t *testing.T) {
	r := typemap.New(nil, nil).Resolve("TEnumAsByte<EFoo>")
	assert.Equal(t, "TEnumAsByte<EFoo>", r.Type)
	assert.Equal(t, []string{"TEnumAsByte", "EFoo"}, r.Unmapped)
}
