// Package pdf genera la versión imprimible del reporte de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Proveedor | Cant | C.Medio | Total | Últ. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / VALOR TOTAL                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa analytics.StockReportRenderer usando Maroto v2.
type StockReportGenerator struct {
	company string
}

// NewStockReportGenerator construye el generador; company aparece en la cabecera.
func NewStockReportGenerator(company string) *StockReportGenerator {
	return &StockReportGenerator{company: company}
}

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) RenderStockReport(_ context.Context, report *dto.StockReportDTO) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		WithAuthor(nonEmpty(g.company, "Compras"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sem itens em estoque.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(report.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, report *dto.StockReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow cabecera de la tabla con texto blanco sobre el color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Produto", 3, align.Left),
		h("Fornecedor", 3, align.Left),
		h("Qtd.", 1, align.Center),
		h("Custo médio", 2, align.Right),
		h("Total", 2, align.Right),
		h("Última", 1, align.Center),
	)
}

func tableDetailRows(rows []dto.StockReportRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		name := r.ProductName
		if !r.InCatalog {
			name += " *"
		}
		last := "—"
		if !r.LastEntryDate.IsZero() {
			last = r.LastEntryDate.Format("02/01/06")
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(r.Supplier, "—"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(r.AverageUnitCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(r.TotalValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(last, props.Text{Size: 7, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func totalsRow(report *dto.StockReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
		})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades:"),
			text.New("VALOR TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", report.TotalQuantity), props.Text{Size: 9, Align: align.Right, Right: 1}),
			grand(formatMoney(report.GrandTotal)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles "." y decimales ",".
// Ej: 1234.5 → "R$ 1.234,50", -0.3 → "-R$ 0,30"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n := len(whole)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(whole) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "R$ " + string(buf) + "," + frac
}
