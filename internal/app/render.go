package app

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fpawel/partners/internal/data"
	"github.com/fpawel/partners/internal/importer"
	"github.com/fpawel/partners/internal/inventory"
	"io"
	"strconv"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func printPartners(w io.Writer, partners []inventory.Partner) {
	var headers []string
	for _, c := range inventory.PartnerCols {
		headers = append(headers, c.Name)
	}
	t := newTable(headers...)
	for _, p := range partners {
		t.Row(formatRow(p.Row())...)
	}
	fmt.Fprintln(w, t.Render())
}

func printProducts(w io.Writer, products []inventory.Product) {
	var headers []string
	for _, c := range inventory.ProductCols {
		headers = append(headers, c.Name)
	}
	t := newTable(headers...)
	for _, p := range products {
		t.Row(formatRow(p.Row())...)
	}
	fmt.Fprintln(w, t.Render())
}

func printSales(w io.Writer, sales []inventory.PartnerSale) {
	var headers []string
	for _, c := range inventory.SaleCols {
		headers = append(headers, c.Name)
	}
	t := newTable(headers...)
	for _, s := range sales {
		t.Row(formatRow(s.Row())...)
	}
	fmt.Fprintln(w, t.Render())
}

func printCounts(w io.Writer, state State, c data.Counts) {
	t := newTable("Состояние", "Партнёры", "Продукция", "Продажи").
		Row(state.String(), fmtInt(c.Partners), fmtInt(c.Products), fmtInt(c.Sales))
	fmt.Fprintln(w, t.Render())
}

func printImportResult(w io.Writer, r importer.Result) {
	t := newTable("Файл", "Найден", "Добавлено", "Повторы", "Пропущено")
	for _, f := range []importer.FileResult{r.Partners, r.Products, r.Sales} {
		found := "нет"
		if f.Found {
			found = "да"
		}
		t.Row(f.File, found, strconv.Itoa(f.Inserted), strconv.Itoa(f.Duplicates), strconv.Itoa(f.Skipped))
	}
	fmt.Fprintln(w, t.Render())
}

func formatRow(xs []interface{}) []string {
	r := make([]string, len(xs))
	for i, x := range xs {
		switch v := x.(type) {
		case nil:
		case float64:
			r[i] = formatFloat(v)
		default:
			r[i] = fmt.Sprintf("%v", v)
		}
	}
	return r
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
