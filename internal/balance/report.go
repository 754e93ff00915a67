package balance

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport 把结果渲染成对齐的文本报告（cmd/balance 的标准输出格式）。
func WriteReport(w io.Writer, r *SimulationResults) error {
	fmt.Fprintf(w, "世代数: %d（失败 %d）  总战斗: %d  总掷骰: %d\n\n",
		r.Generations, r.Failures, r.Combat.Combats, r.Combat.D20Rolls)

	for _, c := range []CategoryResult{r.Races, r.Classes, r.Skills} {
		if err := writeCategory(w, c); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "攻方胜率: %.1f%%  平局: %d  暴击频率: %.2f%%\n",
		r.Combat.AttackerWinRate*100, r.Combat.Draws, r.Combat.CritFrequency*100)
	fmt.Fprintf(w, "总平衡分: %.1f / 100\n", r.OverallScore)

	if len(r.Issues) == 0 {
		fmt.Fprintln(w, "\n未发现失衡问题")
		return nil
	}
	fmt.Fprintf(w, "\n失衡问题（%d 条）:\n", len(r.Issues))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, is := range r.Issues {
		fmt.Fprintf(tw, "  [%s]\t%s\t%s\n", is.Severity, is.Dimension, is.Message)
	}
	return tw.Flush()
}

func writeCategory(w io.Writer, c CategoryResult) error {
	fmt.Fprintf(w, "== %s（平衡分 %.1f）==\n", c.Dimension, c.BalanceScore)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  名称\t场次\t胜场\t胜率\t均分")
	for _, e := range c.Entities {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%.1f%%\t%.0f\n",
			e.Name, e.Plays, e.Wins, e.WinRate*100, e.AvgScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
