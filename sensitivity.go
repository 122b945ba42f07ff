package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

// WhatIfCell is the outcome of switching one factor to one of its options
// while every other answer stays as given
type WhatIfCell struct {
	Option        string  `json:"option"`
	Label         string  `json:"label"`
	LabelEN       string  `json:"label_en"`
	Value         int     `json:"value"`
	TotalACM      int     `json:"total_acm"`
	TotalLifespan float64 `json:"total_lifespan"`
	Delta         float64 `json:"delta"` // Years relative to the current answers
	Current       bool    `json:"current"`
}

// WhatIfRow holds every alternative for a single factor
type WhatIfRow struct {
	Factor     FactorID     `json:"factor"`
	Name       string       `json:"name"`
	NameEN     string       `json:"name_en"`
	Category   CategoryTag  `json:"category"`
	Current    string       `json:"current"`
	Cells      []WhatIfCell `json:"cells"`
	BestOption string       `json:"best_option"`
	BestGain   float64      `json:"best_gain"`
}

// WhatIfAnalysis is the full factor-by-option grid for one profile
type WhatIfAnalysis struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Profile     Profile        `json:"profile"`
	Baseline    LifespanResult `json:"baseline"`
	Rows        []WhatIfRow    `json:"rows"`
}

// Improvable returns the rows where a different answer would add years
func (a *WhatIfAnalysis) Improvable() []WhatIfRow {
	result := make([]WhatIfRow, 0, len(a.Rows))
	for _, row := range a.Rows {
		if row.BestGain > 0 {
			result = append(result, row)
		}
	}
	return result
}

// WhatIf recomputes the lifespan for every alternative answer of every factor.
// Rows are ordered by the largest achievable gain, registry order breaking ties.
func (e *Estimator) WhatIf(p *Profile) (*WhatIfAnalysis, error) {
	if p == nil {
		return nil, ValidationError{Field: "profile", Message: "profile is required"}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	impacts, err := e.registry.ResolveImpacts(p.Answers)
	if err != nil {
		return nil, err
	}

	baseline, err := CalculateLifespan(impacts, p.Gender, p.Age, e.base, e.limits)
	if err != nil {
		return nil, fmt.Errorf("calculating lifespan: %w", err)
	}

	analysis := &WhatIfAnalysis{
		GeneratedAt: e.now(),
		Profile:     *p.Clone(),
		Baseline:    baseline,
		Rows:        make([]WhatIfRow, 0, len(impacts)),
	}

	// Scratch copy reused for every variation
	varied := make([]Impact, len(impacts))
	copy(varied, impacts)

	for idx, current := range impacts {
		f := e.registry.Get(current.Factor)
		row := WhatIfRow{
			Factor:     f.ID,
			Name:       f.Name,
			NameEN:     f.NameEN,
			Category:   f.Category,
			Current:    current.Option,
			Cells:      make([]WhatIfCell, 0, len(f.Options)),
			BestOption: current.Option,
		}

		for _, o := range f.Options {
			varied[idx] = Impact{
				Factor:   f.ID,
				Option:   o.ID,
				Value:    o.Value,
				Label:    o.Label,
				LabelEN:  o.LabelEN,
				Category: f.Category,
			}
			result, err := CalculateLifespan(varied, p.Gender, p.Age, e.base, e.limits)
			if err != nil {
				return nil, fmt.Errorf("calculating %s=%s: %w", f.ID, o.ID, err)
			}

			delta := round1(result.TotalLifespan - baseline.TotalLifespan)
			row.Cells = append(row.Cells, WhatIfCell{
				Option:        o.ID,
				Label:         o.Label,
				LabelEN:       o.LabelEN,
				Value:         o.Value,
				TotalACM:      result.TotalACM,
				TotalLifespan: result.TotalLifespan,
				Delta:         delta,
				Current:       o.ID == current.Option,
			})
			if delta > row.BestGain {
				row.BestGain = delta
				row.BestOption = o.ID
			}
		}
		varied[idx] = current

		analysis.Rows = append(analysis.Rows, row)
	}

	sort.SliceStable(analysis.Rows, func(a, b int) bool {
		return analysis.Rows[a].BestGain > analysis.Rows[b].BestGain
	})

	e.logger.Debug("what-if computed",
		zap.Int("factors", len(analysis.Rows)),
		zap.Int("improvable", len(analysis.Improvable())),
		zap.Float64("baseline_lifespan", baseline.TotalLifespan))

	return analysis, nil
}

// PrintWhatIf writes the improvable factors as a console table, largest gain first.
// n <= 0 prints all of them.
func PrintWhatIf(w io.Writer, a *WhatIfAnalysis, n int) {
	rows := a.Improvable()
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│ 🔍 如果改变一个习惯 (What if)                                │")
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────────┘")
	if len(rows) == 0 {
		fmt.Fprintln(w, "  没有可以单独改善的因素 (no single change adds years)")
		return
	}

	fmt.Fprintf(w, "  %-14s %-16s → %-16s %10s %8s\n", "因素", "当前", "改为", "预期寿命", "变化")
	for _, row := range rows {
		var current, best WhatIfCell
		for _, c := range row.Cells {
			if c.Current {
				current = c
			}
			if c.Option == row.BestOption {
				best = c
			}
		}
		fmt.Fprintf(w, "  %-14s %-16s → %-16s %8s岁 %8s\n",
			row.Name, current.Label, best.Label, formatYears(best.TotalLifespan), FormatYearsDelta(row.BestGain))
	}
}

// GenerateWhatIfReportInDir writes whatif_<timestamp>.html into outputDir and returns its path
func GenerateWhatIfReportInDir(a *WhatIfAnalysis, outputDir string) (string, error) {
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	filename := filepath.Join(outputDir, fmt.Sprintf("whatif_%s.html", a.GeneratedAt.Format("2006-01-02_150405")))

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteWhatIfHTML(f, a); err != nil {
		return "", fmt.Errorf("failed to generate what-if report: %w", err)
	}
	return filename, nil
}

// WriteWhatIfHTML renders the factor-by-option matrix. Each cell shows the
// lifespan with that one answer changed and is shaded by the change in years.
func WriteWhatIfHTML(w io.Writer, a *WhatIfAnalysis) error {
	esc := html.EscapeString

	maxCells := 0
	for _, row := range a.Rows {
		if len(row.Cells) > maxCells {
			maxCells = len(row.Cells)
		}
	}

	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>What-if 分析</title>
    <style>%s
        .matrix td { text-align: center; font-size: 0.8rem; }
        .matrix td.current { outline: 2px solid var(--primary); font-weight: 700; }
        .matrix .opt { display: block; color: var(--text-muted); font-size: 0.7rem; }
        .gain-0 { background: #f8fafc; }
        .gain-up-1 { background: #dcfce7; }
        .gain-up-2 { background: #86efac; }
        .gain-down-1 { background: #fee2e2; }
        .gain-down-2 { background: #fca5a5; }
    </style>
</head>
<body>
<div class="container">
    <h1>🔍 What-if 分析</h1>
    <p class="subtitle">%d 岁 %s · 当前预期寿命 %s 岁 · 每次只改变一个答案</p>
    <div class="card">
    <table class="matrix">
        <tr><th>因素</th><th>最大收益</th>`, reportCSS, a.Profile.Age, a.Profile.Gender.Label(), formatYears(a.Baseline.TotalLifespan))

	for i := 1; i <= maxCells; i++ {
		fmt.Fprintf(w, "<th>选项 %d</th>", i)
	}
	fmt.Fprintln(w, "</tr>")

	for _, row := range a.Rows {
		fmt.Fprintf(w, "        <tr><td>%s<br><small>%s</small></td><td class=\"%s\">%s</td>",
			esc(row.Name), esc(row.NameEN), gainClass(row.BestGain), FormatYearsDelta(row.BestGain))
		for _, c := range row.Cells {
			class := gainClass(c.Delta)
			if c.Current {
				class += " current"
			}
			fmt.Fprintf(w, "<td class=\"%s\"><span class=\"opt\">%s</span>%s<br>%s</td>",
				class, esc(c.Label), formatYears(c.TotalLifespan), FormatYearsDelta(c.Delta))
		}
		for i := len(row.Cells); i < maxCells; i++ {
			fmt.Fprint(w, "<td></td>")
		}
		fmt.Fprintln(w, "</tr>")
	}

	_, err := fmt.Fprintf(w, `    </table>
    </div>
    <div class="footer">Generated %s</div>
</div>
</body>
</html>
`, a.GeneratedAt.Format("2006-01-02 15:04:05"))
	return err
}

// gainClass buckets a change in years into a heatmap shade
func gainClass(delta float64) string {
	switch {
	case delta >= 2:
		return "gain-up-2"
	case delta > 0:
		return "gain-up-1"
	case delta <= -2:
		return "gain-down-2"
	case delta < 0:
		return "gain-down-1"
	default:
		return "gain-0"
	}
}
