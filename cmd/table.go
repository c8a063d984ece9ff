package cmd

import (
	"fmt"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// table prints fixed-width columns with a rule under the header.
type table struct {
	format string
	width  int
}

func newTable(format string, width int, header ...any) table {
	t := table{format: format + "\n", width: width}
	fmt.Printf(t.format, header...)
	t.rule()
	return t
}

func (t table) row(cols ...any) {
	fmt.Printf(t.format, cols...)
}

func (t table) rule() {
	fmt.Println(strings.Repeat("─", t.width))
}

func stamp(ts time.Time) string {
	return ts.Local().Format(timeLayout)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
