package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
)

const reportCSS = `
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'PingFang SC', 'Microsoft YaHei', sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 960px; margin: 0 auto; }
        h1 { font-size: 1.75rem; margin-bottom: 0.5rem; color: var(--primary); }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle { color: var(--text-muted); margin-bottom: 1.5rem; }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .grid { display: grid; gap: 1rem; grid-template-columns: repeat(3, 1fr); }
        @media (max-width: 768px) { .grid { grid-template-columns: 1fr; } }
        .metric { text-align: center; padding: 1rem; border-radius: 8px; background: var(--bg); }
        .metric-value { font-size: 2rem; font-weight: 700; color: var(--primary); }
        .metric-label { font-size: 0.875rem; color: var(--text-muted); }
        .metric.success .metric-value { color: var(--success); }
        .metric.danger .metric-value { color: var(--danger); }
        table { width: 100%; border-collapse: collapse; font-size: 0.875rem; }
        th, td { padding: 0.6rem 0.5rem; text-align: right; border-bottom: 1px solid var(--border); }
        th { background: var(--bg); font-weight: 600; }
        th:first-child, td:first-child { text-align: left; }
        .negative { color: var(--danger); }
        .positive { color: var(--success); }
        .limit-warning { padding: 1rem; border-radius: 8px; margin-bottom: 1.5rem; }
        .limit-warning.max { background: #fef3c7; border-left: 4px solid var(--warning); }
        .limit-warning.min { background: #fee2e2; border-left: 4px solid var(--danger); }
        .rec { padding: 0.75rem 1rem; margin-bottom: 0.75rem; border-left: 4px solid var(--danger); background: #fff7ed; border-radius: 4px; }
        .rec.opportunity { border-left-color: var(--success); background: #ecfdf5; }
        .priority { display: inline-block; font-size: 0.75rem; padding: 0 0.5rem; border-radius: 4px; background: var(--primary); color: #fff; margin-left: 0.5rem; }
        .priority.high { background: var(--danger); }
        .rec.opportunity .priority.high { background: var(--success); }
        small { color: var(--text-muted); }
        .footer { text-align: center; color: var(--text-muted); font-size: 0.75rem; margin-top: 2rem; }
`

// GenerateHTMLReport writes a standalone HTML report to filename
func GenerateHTMLReport(r *Report, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteHTMLReport(f, r)
}

// GenerateHTMLReportInDir writes report_<timestamp>.html into outputDir and returns its path
func GenerateHTMLReportInDir(r *Report, outputDir string) (string, error) {
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	filename := fmt.Sprintf("report_%s.html", r.GeneratedAt.Format("2006-01-02_150405"))
	fullPath := filepath.Join(outputDir, filename)
	if err := GenerateHTMLReport(r, fullPath); err != nil {
		return "", fmt.Errorf("failed to generate HTML report: %w", err)
	}
	return fullPath, nil
}

// WriteHTMLReport renders the report as a complete HTML page
func WriteHTMLReport(w io.Writer, r *Report) error {
	res := r.Result
	esc := html.EscapeString

	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>寿命预测报告 %s</title>
    <style>%s</style>
</head>
<body>
<div class="container">
    <h1>📊 您的寿命预测报告</h1>
    <p class="subtitle">%d 岁 %s · 报告编号 %s</p>
`, esc(r.ID), reportCSS, r.Profile.Age, r.Profile.Gender.Label(), esc(r.ID))

	lifespanClass := ""
	if res.LifespanChange > 0 {
		lifespanClass = "success"
	} else if res.LifespanChange < 0 {
		lifespanClass = "danger"
	}
	acmClass := ""
	if res.TotalACM < 0 {
		acmClass = "success"
	} else if res.TotalACM > 0 {
		acmClass = "danger"
	}

	fmt.Fprintf(w, `    <div class="card grid">
        <div class="metric %s">
            <div class="metric-label">预期寿命</div>
            <div class="metric-value">%.1f</div>
            <div class="metric-label">岁（还能活 %.1f 年）</div>
        </div>
        <div class="metric %s">
            <div class="metric-label">全因死亡率变化 (ACM)</div>
            <div class="metric-value">%s</div>
            <div class="metric-label">%s</div>
        </div>
        <div class="metric %s">
            <div class="metric-label">寿命变化</div>
            <div class="metric-value">%s</div>
            <div class="metric-label">年</div>
        </div>
    </div>
`, lifespanClass, res.TotalLifespan, res.RemainingYears,
		acmClass, FormatSigned(res.TotalACM), ACMStatusLabel(r.ACMStatus()),
		lifespanClass, FormatYearsDelta(res.LifespanChange))

	if res.LimitWarning != nil {
		title := "🚨 健康严重警告"
		extra := ""
		if res.LimitWarning.Type == LimitMax {
			title = "⚠️ 已达人类寿命极限"
			extra = "<p><small>恭喜！您的生活习惯非常健康。继续保持，您有机会成为超级长寿者！</small></p>"
		}
		fmt.Fprintf(w, `    <div class="limit-warning %s">
        <strong>%s</strong>
        <p>%s</p>
        %s
    </div>
`, res.LimitWarning.Type, title, esc(res.LimitWarning.Message), extra)
	}

	fmt.Fprintf(w, `    <div class="card">
        <h2>📈 对比分析</h2>
        <table>
            <tr><td>基准寿命</td><td>%.0f 岁（%s平均）</td></tr>
            <tr><td>您的寿命</td><td>%.1f 岁</td></tr>
            <tr><td>差异</td><td>%s 年</td></tr>
        </table>
    </div>
`, res.BaseLifespan, r.Profile.Gender.Label(), res.TotalLifespan, FormatYearsDelta(res.LifespanChange))

	if len(r.TopImpacts) > 0 {
		fmt.Fprint(w, `    <div class="card">
        <h2>📋 主要影响因素</h2>
        <table>
            <tr><th>因素</th><th>ACM</th></tr>
`)
		for _, i := range r.TopImpacts {
			fmt.Fprintf(w, "            <tr><td>%s</td><td class=\"%s\">%s</td></tr>\n",
				esc(i.Label), impactClass(i.Value), FormatSigned(i.Value))
		}
		fmt.Fprint(w, "        </table>\n    </div>\n")
	}

	if len(r.CategoryStats) > 0 {
		fmt.Fprint(w, `    <div class="card">
        <h2>🗂️ 分类统计</h2>
        <table>
            <tr><th>类别</th><th>因素数</th><th>ACM</th><th>主要因素</th></tr>
`)
		for _, c := range r.CategoryStats {
			names := ""
			for idx, i := range c.Factors {
				if idx > 0 {
					names += "、"
				}
				names += esc(i.Label)
			}
			fmt.Fprintf(w, "            <tr><td>%s</td><td>%d</td><td class=\"%s\">%s</td><td>%s</td></tr>\n",
				esc(c.Name), c.Count, impactClass(c.TotalACM), FormatSigned(c.TotalACM), names)
		}
		fmt.Fprint(w, "        </table>\n    </div>\n")
	}

	if len(r.Negative) > 0 {
		fmt.Fprint(w, "    <div class=\"card\">\n        <h2>⚠️ 需要改善的方面</h2>\n")
		for _, rec := range r.Negative {
			fmt.Fprintf(w, `        <div class="rec">
            <strong>%s</strong><span class="priority %s">%s优先级</span>
            <p>%s</p>
            <small>当前影响: +%d%% ACM</small>
        </div>
`, esc(rec.Label), rec.Priority, rec.Priority.Label(), esc(rec.Advice), rec.CurrentImpact)
		}
		fmt.Fprint(w, "    </div>\n")
	}

	if len(r.Opportunities) > 0 {
		fmt.Fprint(w, "    <div class=\"card\">\n        <h2>💡 增寿建议</h2>\n")
		for _, o := range r.Opportunities {
			fmt.Fprintf(w, `        <div class="rec opportunity">
            <span class="priority %s">%s优先级</span>
            <p>%s</p>
            <small>潜在收益: %d%% ACM</small>
        </div>
`, o.Priority, o.Priority.Label(), esc(o.Advice), o.PotentialGain)
		}
		fmt.Fprint(w, "    </div>\n")
	}

	fmt.Fprint(w, "    <div class=\"card\">\n        <h2>📚 温馨提示</h2>\n        <ul>\n")
	for _, line := range disclaimer {
		fmt.Fprintf(w, "            <li>%s</li>\n", line)
	}
	_, err := fmt.Fprintf(w, `        </ul>
    </div>
    <div class="footer">Generated %s</div>
</div>
</body>
</html>
`, r.GeneratedAt.Format("2006-01-02 15:04:05"))

	return err
}

func impactClass(value int) string {
	switch {
	case value > 0:
		return "negative"
	case value < 0:
		return "positive"
	default:
		return ""
	}
}
