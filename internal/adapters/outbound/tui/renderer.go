package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dumpconv/dumpconv/internal/domain"
	"github.com/dumpconv/dumpconv/internal/domain/typemap"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats the end-of-run summary for a terminal.
func RenderReport(r *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("dumpconv")
	subtitle := dimStyle.Render(r.InputRoot + " → " + r.OutputRoot)
	status := passStyle.Bold(true).Render("clean")
	switch {
	case r.Interrupted:
		status = failStyle.Bold(true).Render("interrupted")
	case r.FilesFailed > 0:
		status = warnStyle.Bold(true).Render("partial")
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + status))
	b.WriteString("\n\n")

	// ── Files ──
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render(padRight("Files processed", 20)), r.FilesProcessed)
	if r.FilesFailed > 0 {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(padRight("Files failed", 20)), failStyle.Render(fmt.Sprintf("%d", r.FilesFailed)))
	}
	fmt.Fprintf(&b, "  %s %d\n", labelStyle.Render(padRight("Lines", 20)), r.Lines)
	if r.InputRevision != "" {
		rev := r.InputRevision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(padRight("Input revision", 20)), dimStyle.Render(rev))
	}
	b.WriteString("\n")

	// ── Fields ──
	b.WriteString("  " + titleStyle.Render("Fields") + "  " + dimStyle.Render(fmt.Sprintf("%d macros", r.Fields.Total())) + "\n")
	for _, k := range domain.AllKinds {
		fmt.Fprintf(&b, "    %s %d\n", padRight(k.String(), 18), r.Fields.Get(k))
	}
	if r.Ignored > 0 {
		fmt.Fprintf(&b, "    %s %s\n", padRight("ignored", 18), dimStyle.Render(fmt.Sprintf("%d", r.Ignored)))
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Unmapped types ──
	if len(r.Unmapped) > 0 {
		b.WriteString("  " + titleStyle.Render("Unmapped types") + "  " + warnTagStyle.Render(fmt.Sprintf("%d", len(r.Unmapped))) + "\n")
		b.WriteString("  " + dimStyle.Render("emitted unqualified; add them to the type table to map them") + "\n\n")
		for _, name := range r.Unmapped {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), name)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("  " + passStyle.Render("Every type was mapped.") + "\n\n")
	}

	// ── Failures ──
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "    %s %s\n", errorTagStyle.Render("error"), f.Path)
		fmt.Fprintf(&b, "          %s\n", dimStyle.Render(f.Error))
	}

	return b.String()
}

// RenderResolutions formats type lookups, one per line.
func RenderResolutions(raws []string, res []typemap.Resolution) string {
	var b strings.Builder
	width := 0
	for _, raw := range raws {
		width = max(width, len(raw))
	}
	for i, raw := range raws {
		r := res[i]
		source := dimStyle.Render(r.Source.String())
		if r.Source == typemap.SourceFallback {
			source = warnStyle.Render(r.Source.String())
		}
		fmt.Fprintf(&b, "  %s → %s  %s\n", padRight(raw, width), r.Type, source)
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
