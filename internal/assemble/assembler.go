// Package assemble writes the persisted artifact set of a finished run: the
// JSON record for machine reuse, the Markdown report for human review, and
// workflow-specific extras (HTML logo preview, CSV calendar grid).
package assemble

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"brandkit/internal/domain"
	"brandkit/internal/infra"
	"brandkit/internal/workspace"
)

const (
	recordFile   = "record.json"
	reportFile   = "report.md"
	previewFile  = "preview.html"
	calendarFile = "calendar.csv"
)

var titleCaser = cases.Title(language.Und)

type Assembler struct {
	logger infra.Logger
}

func NewAssembler(logger infra.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// LogoInput is everything a finished logo run produced.
type LogoInput struct {
	Request     domain.GenerationRequest  `json:"request"`
	Instruction domain.RefinedInstruction `json:"instruction"`
	Outcome     domain.DualOutcome        `json:"outcome"`
	Analysis    string                    `json:"analysis,omitempty"`
}

// BatchInput is everything a finished story/carousel run produced.
type BatchInput struct {
	Category    domain.ContentCategory    `json:"category"`
	Prompts     []string                  `json:"prompts"`
	Instruction domain.RefinedInstruction `json:"instruction,omitempty"`
	Batch       domain.BatchResult        `json:"batch"`
}

// CalendarInput is everything a finished calendar run produced.
type CalendarInput struct {
	Prompt        string   `json:"prompt"`
	Platforms     []string `json:"platforms"`
	DurationWeeks int      `json:"duration_weeks"`
	Plan          string   `json:"plan"`
}

// AssembleLogo writes record, report, and the HTML showcase preview. A
// preview render failure is logged and leaves PreviewPath empty; record and
// report failures are hard errors.
func (a *Assembler) AssembleLogo(ws *workspace.Workspace, in LogoInput) (domain.OutputBundle, error) {
	bundle, err := a.writeCore(ws, in, logoReport(in))
	if err != nil {
		return domain.OutputBundle{}, err
	}
	preview, err := renderLogoPreview(in)
	if err != nil {
		a.logger.Warn().Err(err).Msg("assemble: preview render failed, bundle continues without it")
		return bundle, nil
	}
	path, err := ws.Write(previewFile, preview)
	if err != nil {
		a.logger.Warn().Err(err).Msg("assemble: preview write failed, bundle continues without it")
		return bundle, nil
	}
	bundle.PreviewPath = path
	return bundle, nil
}

// AssembleBatch writes record and report for a story or carousel run.
func (a *Assembler) AssembleBatch(ws *workspace.Workspace, in BatchInput) (domain.OutputBundle, error) {
	return a.writeCore(ws, in, batchReport(in))
}

// AssembleCalendar writes record, report, and the platforms-by-days CSV grid.
// A CSV failure is logged and leaves CSVPath empty.
func (a *Assembler) AssembleCalendar(ws *workspace.Workspace, in CalendarInput) (domain.OutputBundle, error) {
	bundle, err := a.writeCore(ws, in, calendarReport(in))
	if err != nil {
		return domain.OutputBundle{}, err
	}
	grid, err := calendarGrid(in)
	if err != nil {
		a.logger.Warn().Err(err).Msg("assemble: calendar grid failed, bundle continues without it")
		return bundle, nil
	}
	path, err := ws.Write(calendarFile, grid)
	if err != nil {
		a.logger.Warn().Err(err).Msg("assemble: calendar grid write failed, bundle continues without it")
		return bundle, nil
	}
	bundle.CSVPath = path
	return bundle, nil
}

func (a *Assembler) writeCore(ws *workspace.Workspace, record any, report string) (domain.OutputBundle, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return domain.OutputBundle{}, fmt.Errorf("assemble: encode record: %w", err)
	}
	recordPath, err := ws.Write(recordFile, data)
	if err != nil {
		return domain.OutputBundle{}, fmt.Errorf("assemble: %w", err)
	}
	reportPath, err := ws.Write(reportFile, []byte(report))
	if err != nil {
		return domain.OutputBundle{}, fmt.Errorf("assemble: %w", err)
	}
	return domain.OutputBundle{
		Workspace:  ws.Dir(),
		RecordPath: recordPath,
		ReportPath: reportPath,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func logoReport(in LogoInput) string {
	ctxInfo := in.Request.Context
	var b strings.Builder
	fmt.Fprintf(&b, "# Logo Design: %s\n\n", titleCaser.String(ctxInfo.CompanyName))
	b.WriteString("## Company\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", ctxInfo.CompanyName)
	if ctxInfo.CompanyDescription != "" {
		fmt.Fprintf(&b, "- **About:** %s\n", ctxInfo.CompanyDescription)
	}
	if ctxInfo.Industry != "" {
		fmt.Fprintf(&b, "- **Industry:** %s\n", ctxInfo.Industry)
	}
	if ctxInfo.Tone != "" {
		fmt.Fprintf(&b, "- **Brand tone:** %s\n", ctxInfo.Tone)
	}
	b.WriteString("\n## Design\n\n")
	fmt.Fprintf(&b, "- **Style:** %s\n", in.Request.Style)
	if ctxInfo.PreferredColor != "" {
		fmt.Fprintf(&b, "- **Color preference:** %s\n", ctxInfo.PreferredColor)
	}
	fmt.Fprintf(&b, "- **Instruction provenance:** %s\n", in.Instruction.Provenance)

	b.WriteString("\n## Result\n\n")
	selected := in.Outcome.Selected
	if selected.OK() {
		fmt.Fprintf(&b, "![logo](%s)\n\n", selected.Filename)
		fmt.Fprintf(&b, "- **Local file:** %s\n", selected.LocalPath)
		fmt.Fprintf(&b, "- **Source URL:** %s\n", selected.URL)
		if selected.Seed != nil {
			fmt.Fprintf(&b, "- **Seed:** %d\n", *selected.Seed)
		}
	} else {
		fmt.Fprintf(&b, "Generation failed: %s\n", selected.Err)
	}
	fmt.Fprintf(&b, "- **Selection:** %s\n", in.Outcome.Rationale)

	if in.Analysis != "" {
		b.WriteString("\n## Brand Analysis\n\n")
		b.WriteString(in.Analysis)
		b.WriteString("\n")
	}

	b.WriteString("\n## Generation Prompt\n\n```\n")
	b.WriteString(in.Instruction.Text)
	b.WriteString("\n```\n")
	return b.String()
}

func batchReport(in BatchInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Batch\n\n", titleCaser.String(string(in.Category)))
	fmt.Fprintf(&b, "%d of %d items succeeded.\n\n", in.Batch.Successful, in.Batch.Total)
	for i, item := range in.Batch.Items {
		fmt.Fprintf(&b, "## Item %d\n\n", i+1)
		if i < len(in.Prompts) {
			fmt.Fprintf(&b, "- **Prompt:** %s\n", in.Prompts[i])
		}
		if item.OK() {
			fmt.Fprintf(&b, "- **File:** %s\n", item.LocalPath)
			fmt.Fprintf(&b, "- **Source URL:** %s\n", item.URL)
		} else {
			fmt.Fprintf(&b, "- **Error:** %s\n", item.Err)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func calendarReport(in CalendarInput) string {
	var b strings.Builder
	b.WriteString("# Content Calendar\n\n")
	fmt.Fprintf(&b, "- **Theme:** %s\n", in.Prompt)
	fmt.Fprintf(&b, "- **Platforms:** %s\n", strings.Join(in.Platforms, ", "))
	fmt.Fprintf(&b, "- **Duration:** %d week(s)\n\n", in.DurationWeeks)
	b.WriteString("## Plan\n\n")
	b.WriteString(in.Plan)
	b.WriteString("\n")
	return b.String()
}

func calendarGrid(in CalendarInput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append([]string{"week", "day"}, in.Platforms...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("assemble: write csv header: %w", err)
	}
	for week := 1; week <= in.DurationWeeks; week++ {
		for day := 1; day <= 7; day++ {
			row := make([]string, 0, len(in.Platforms)+2)
			row = append(row, fmt.Sprintf("%d", week), fmt.Sprintf("%d", day))
			for range in.Platforms {
				row = append(row, "")
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("assemble: write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("assemble: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Company}} — Logo Preview</title>
<style>
body { font-family: system-ui, sans-serif; background: #f5f5f5; margin: 0; padding: 2rem; }
.card { max-width: 640px; margin: 0 auto; background: #fff; border-radius: 12px; padding: 2rem; box-shadow: 0 2px 12px rgba(0,0,0,.08); }
.logo { text-align: center; padding: 2rem; background: repeating-conic-gradient(#eee 0% 25%, #fff 0% 50%) 50% / 24px 24px; border-radius: 8px; }
.logo img { max-width: 320px; }
dl { display: grid; grid-template-columns: max-content 1fr; gap: .25rem 1rem; }
dt { font-weight: 600; }
</style>
</head>
<body>
<div class="card">
<h1>{{.Company}}</h1>
<div class="logo"><img src="{{.Filename}}" alt="{{.Company}} logo"></div>
<dl>
<dt>Style</dt><dd>{{.Style}}</dd>
{{if .Industry}}<dt>Industry</dt><dd>{{.Industry}}</dd>{{end}}
{{if .Palette}}<dt>Palette</dt><dd>{{.Palette}}</dd>{{end}}
</dl>
{{if .Analysis}}<h2>Why it works</h2><p>{{.Analysis}}</p>{{end}}
</div>
</body>
</html>
`))

func renderLogoPreview(in LogoInput) ([]byte, error) {
	if !in.Outcome.Selected.OK() {
		return nil, fmt.Errorf("assemble: no asset to preview: %s", in.Outcome.Selected.Err)
	}
	var buf bytes.Buffer
	err := previewTemplate.Execute(&buf, struct {
		Company  string
		Filename string
		Style    domain.LogoStyle
		Industry string
		Palette  string
		Analysis string
	}{
		Company:  titleCaser.String(in.Request.Context.CompanyName),
		Filename: in.Outcome.Selected.Filename,
		Style:    in.Request.Style,
		Industry: in.Request.Context.Industry,
		Palette:  in.Request.Context.PreferredColor,
		Analysis: in.Analysis,
	})
	if err != nil {
		return nil, fmt.Errorf("assemble: render preview: %w", err)
	}
	return buf.Bytes(), nil
}
