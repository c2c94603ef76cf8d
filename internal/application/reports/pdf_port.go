package reports

import (
	"context"

	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
)

// PDFGenerator puerto de render del reporte a PDF descargable.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.ReportResponse) ([]byte, error)
}
