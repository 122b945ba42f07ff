package main

import (
	"fmt"
	"io"
	"strings"
)

// FormatSigned formats an ACM percentage with an explicit sign for harmful values
func FormatSigned(value int) string {
	if value > 0 {
		return fmt.Sprintf("+%d%%", value)
	}
	return fmt.Sprintf("%d%%", value)
}

// FormatYearsDelta formats a lifespan change with an explicit sign
func FormatYearsDelta(years float64) string {
	if years > 0 {
		return fmt.Sprintf("+%.1f", years)
	}
	return fmt.Sprintf("%.1f", years)
}

// ACMStatusLabel returns the Chinese summary for the ACM status
func ACMStatusLabel(status string) string {
	switch status {
	case "above":
		return "高于平均水平"
	case "below":
		return "低于平均水平"
	default:
		return "平均水平"
	}
}

// Disclaimer lines shown at the end of every report
var disclaimer = []string{
	"本预测基于大规模研究的统计相关性",
	"各因素间可能存在交互作用，实际影响可能不同",
	"建议定期体检，咨询专业医生",
	"改善生活习惯需要循序渐进，不要急于求成",
}

var disclaimerEN = []string{
	"Estimates are based on statistical correlations from large studies",
	"Factors may interact; real effects can differ",
	"Have regular check-ups and consult a doctor",
	"Change habits gradually rather than all at once",
}

// PrintReport writes the console version of a report
func PrintReport(w io.Writer, r *Report) {
	res := r.Result

	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                         LIFESPAN FORECAST 寿命预测报告                       ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Profile: %d 岁 %s   Report: %s\n", r.Profile.Age, r.Profile.Gender.Label(), r.ID)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "预期寿命")
	fmt.Fprintln(w, "────────")
	fmt.Fprintf(w, "  %.1f 岁（还能活 %.1f 年）\n", res.TotalLifespan, res.RemainingYears)
	if res.LimitWarning != nil {
		fmt.Fprintln(w)
		if res.LimitWarning.Type == LimitMax {
			fmt.Fprintln(w, "  ⚠ 已达人类寿命极限")
		} else {
			fmt.Fprintln(w, "  ✗ 健康严重警告")
		}
		fmt.Fprintf(w, "  %s\n", res.LimitWarning.Message)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "全因死亡率变化 (ACM)")
	fmt.Fprintln(w, "────────────────────")
	fmt.Fprintf(w, "  %s  %s\n", FormatSigned(res.TotalACM), ACMStatusLabel(r.ACMStatus()))
	if res.EffectiveACM != res.TotalACM {
		fmt.Fprintf(w, "  (按 %s 计算寿命变化)\n", FormatSigned(res.EffectiveACM))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "对比分析")
	fmt.Fprintln(w, "────────")
	fmt.Fprintf(w, "  基准寿命: %.0f 岁（%s平均）\n", res.BaseLifespan, r.Profile.Gender.Label())
	fmt.Fprintf(w, "  您的寿命: %.1f 岁\n", res.TotalLifespan)
	fmt.Fprintf(w, "  差异:     %s 年\n", FormatYearsDelta(res.LifespanChange))
	fmt.Fprintln(w)

	if len(r.TopImpacts) > 0 {
		fmt.Fprintln(w, "主要影响因素")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, i := range r.TopImpacts {
			fmt.Fprintf(w, "  %-24s %6s\n", i.Label, FormatSigned(i.Value))
		}
		fmt.Fprintln(w)
	}

	if len(r.CategoryStats) > 0 {
		fmt.Fprintln(w, "分类统计")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, c := range r.CategoryStats {
			fmt.Fprintf(w, "  %-16s %6s  (%d 项)\n", c.Name, FormatSigned(c.TotalACM), c.Count)
		}
		fmt.Fprintln(w)
	}

	if len(r.Negative) > 0 {
		fmt.Fprintln(w, "需要改善的方面")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, rec := range r.Negative {
			fmt.Fprintf(w, "  [%s] %s (当前影响: +%d%% ACM)\n", rec.Priority.Label(), rec.Label, rec.CurrentImpact)
			fmt.Fprintf(w, "      %s\n", rec.Advice)
		}
		fmt.Fprintln(w)
	}

	if len(r.Opportunities) > 0 {
		fmt.Fprintln(w, "增寿建议")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, o := range r.Opportunities {
			fmt.Fprintf(w, "  [%s] %s\n", o.Priority.Label(), o.Advice)
			fmt.Fprintf(w, "      潜在收益: %d%% ACM\n", o.PotentialGain)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "温馨提示")
	fmt.Fprintln(w, "────────")
	for _, line := range disclaimer {
		fmt.Fprintf(w, "  • %s\n", line)
	}
}
