package table

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/eduardofuncao/dbconnect/internal/db"
	"github.com/eduardofuncao/dbconnect/internal/styles"
)

// MaxCellWidth caps the display width of a column.
const MaxCellWidth = 30

const nullValue = "NULL"

// Render writes rows as a fixed-width table followed by a footer with the
// row count and elapsed time.
func Render(w io.Writer, columns []string, rows []db.Row, elapsed time.Duration) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, styles.Faint.Render("No results found"))
		return err
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(columns))
		for j, col := range columns {
			cells[i][j] = cellValue(row[col])
		}
	}
	widths := columnWidths(columns, cells)
	sep := styles.TableBorder.Render("│")

	var b strings.Builder
	header := make([]string, len(columns))
	for j, col := range columns {
		header[j] = styles.TableHeader.Render(formatCell(col, widths[j]))
	}
	b.WriteString(strings.Join(header, sep))
	b.WriteString("\n")

	rule := make([]string, len(columns))
	for j := range columns {
		rule[j] = strings.Repeat("─", widths[j])
	}
	b.WriteString(styles.TableBorder.Render(strings.Join(rule, "┼")))
	b.WriteString("\n")

	for _, row := range cells {
		line := make([]string, len(row))
		for j, v := range row {
			style := styles.TableCell
			if v == nullValue {
				style = styles.Faint
			}
			line[j] = style.Render(formatCell(v, widths[j]))
		}
		b.WriteString(strings.Join(line, sep))
		b.WriteString("\n")
	}

	b.WriteString(styles.Faint.Render(fmt.Sprintf("%dx%d in %.2fs", len(rows), len(columns), elapsed.Seconds())))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func cellValue(v any) string {
	if v == nil {
		return nullValue
	}
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func columnWidths(columns []string, cells [][]string) []int {
	widths := make([]int, len(columns))
	for j, col := range columns {
		widths[j] = runewidth.StringWidth(col)
	}
	for _, row := range cells {
		for j, v := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(v))
		}
	}
	for j := range widths {
		widths[j] = min(widths[j], MaxCellWidth)
	}
	return widths
}

func formatCell(content string, width int) string {
	if runewidth.StringWidth(content) > width {
		content = runewidth.Truncate(content, width, "…")
	}
	return runewidth.FillRight(content, width)
}
