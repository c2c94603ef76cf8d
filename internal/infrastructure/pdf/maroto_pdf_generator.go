// Package pdf implementa la exportación del reporte de conversiones a PDF
// con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período del reporte                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conversiones / revenue / comisión por estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Empresa | Revenue | Comisión | Estado        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/application/reports"
)

var _ reports.PDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
// Las etiquetas van en inglés: la fuente helvetica no trae glifos CJK.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, report *dto.ReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conversion Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y período del reporte (der).
func headerRow(report *dto.ReportResponse) core.Row {
	period := "all time"
	if report.Period.Start != "" {
		period = report.Period.Start + " / " + report.Period.End
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("CONVERSION REPORT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Period: "+period, props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryRows: bloque de totales del conjunto filtrado.
func summaryRows(s dto.ReportSummaryDTO) []core.Row {
	item := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			item("Conversions", fmt.Sprintf("%d", s.TotalConversions)),
			item("Revenue", s.TotalRevenue.StringFixed(2)),
			item("Total commission", s.TotalCommission.StringFixed(2)),
		),
		row.New(14).Add(
			item("Confirmed commission", s.ApprovedCommission.StringFixed(2)),
			item("Pending commission", s.PendingCommission.StringFixed(2)),
			col.New(4),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de conversiones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 3, align.Left),
		h("Company", 3, align.Left),
		h("Revenue", 2, align.Right),
		h("Commission", 2, align.Right),
		h("Status", 2, align.Center),
	)
}

// tableRows: una fila por conversión.
func tableRows(data []dto.ReportRowDTO) []core.Row {
	result := make([]core.Row, 0, len(data))
	for _, d := range data {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				d.ConvertedAt.Format("2006-01-02 15:04"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				d.CompanyName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				d.Revenue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				d.Commission.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				d.Status,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}
