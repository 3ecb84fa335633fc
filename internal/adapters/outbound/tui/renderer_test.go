package tui_test

import (
	"testing"

	"github.com/dumpconv/dumpconv/internal/adapters/outbound/tui"
	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		InputRoot:      "dumps",
		OutputRoot:     "out",
		InputRevision:  "0123456789abcdef0123456789abcdef01234567",
		FilesProcessed: 12,
		FilesFailed:    1,
		Lines:          480,
		Fields:         domain.KindCounts{Standard: 40, Vector: 3, BitField: 5, Enum: 2},
		Ignored:        4,
		Unmapped:       []string{"FInventorySlot", "UBP_Door_C"},
		Failures: []domain.FileFailure{
			{Path: "Game/Locked.hpp", Error: "permission denied"},
		},
	}
}

func TestRenderReport_ContainsCounts(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "Files processed")
	assert.Contains(t, output, "12")
	assert.Contains(t, output, "480")
	assert.Contains(t, output, "50 macros")
}

func TestRenderReport_ContainsEveryKind(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	for _, k := range domain.AllKinds {
		assert.Contains(t, output, k.String())
	}
	assert.Contains(t, output, "ignored")
}

func TestRenderReport_ListsUnmappedTypes(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "Unmapped types")
	assert.Contains(t, output, "FInventorySlot")
	assert.Contains(t, output, "UBP_Door_C")
}

func TestRenderReport_ShowsFailures(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "partial")
	assert.Contains(t, output, "Game/Locked.hpp")
	assert.Contains(t, output, "permission denied")
}

func TestRenderReport_ShortRevision(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "0123456")
	assert.NotContains(t, output, "0123456789abcdef0123456789abcdef01234567")
}

func TestRenderReport_Clean(t *testing.T) {
	output := tui.RenderReport(&domain.Report{InputRoot: "in", OutputRoot: "out", FilesProcessed: 1})
	assert.Contains(t, output, "clean")
	assert.Contains(t, output, "Every type was mapped.")
	assert.NotContains(t, output, "Files failed")
}

func TestRenderReport_Interrupted(t *testing.T) {
	output := tui.RenderReport(&domain.Report{Interrupted: true})
	assert.Contains(t, output, "interrupted")
}

func TestRenderResolutions(t *testing.T) {
	output := tui.RenderResolutions(
		[]string{"AActor*", "FFoo"},
		[]typemap.Resolution{
			{Type: "RC::Unreal::AActor*", Source: typemap.SourceTable},
			{Type: "FFoo", Source: typemap.SourceFallback, Unmapped: []string{"FFoo"}},
		},
	)
	assert.Contains(t, output, "RC::Unreal::AActor*")
	assert.Contains(t, output, "table")
	assert.Contains(t, output, "fallback")
}
