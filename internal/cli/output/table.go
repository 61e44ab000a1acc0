package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table writes rows under header in the effective mode. JSON mode is not
// handled here; callers encode their own structs.
func (r *Renderer) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		r.Println("(0 rows)")
		return
	}

	if r.EffectiveMode() == ModeMarkdown {
		r.markdownTable(header, rows)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	head := make(table.Row, len(header))
	for i, h := range header {
		head[i] = h
	}
	t.AppendHeader(head)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}
	t.Render()
	r.Printf("(%d rows)\n", len(rows))
}

func (r *Renderer) markdownTable(header []string, rows [][]string) {
	r.Printf("| %s |\n", strings.Join(header, " | "))
	seps := make([]string, len(header))
	for i := range seps {
		seps[i] = "---"
	}
	r.Printf("| %s |\n", strings.Join(seps, " | "))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = strings.ReplaceAll(v, "|", `\|`)
		}
		r.Printf("| %s |\n", strings.Join(cells, " | "))
	}
	r.Println("")
	r.Println(fmt.Sprintf("_%d rows_", len(rows)))
}
