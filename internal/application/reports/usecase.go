// Package reports contiene los casos de uso de analítica: dashboard del
// afiliado, serie para gráficos, reportes por rango de fechas y agregados
// mensuales.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

const (
	dashboardTopLinks    = 5  // enlaces en el widget de top performers
	dashboardRecentConvs = 10 // conversiones recientes en el dashboard
	monthlyReportMonths  = 12 // meses del reporte mensual
	savedReportsLimit    = 20 // snapshots listados en /reports/saved
	reportDateLayout     = "2006-01-02"
)

// ReportUseCase consultas de analítica sobre enlaces y conversiones.
type ReportUseCase struct {
	linkRepo   repository.LinkRepository
	convRepo   repository.ConversionRepository
	reportRepo repository.ReportRepository
	pdfGen     PDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(linkRepo repository.LinkRepository, convRepo repository.ConversionRepository, reportRepo repository.ReportRepository, pdfGen PDFGenerator) *ReportUseCase {
	return &ReportUseCase{linkRepo: linkRepo, convRepo: convRepo, reportRepo: reportRepo, pdfGen: pdfGen}
}

// ExportPDF renderiza un reporte ya generado como PDF descargable.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, report *dto.ReportResponse) ([]byte, error) {
	return uc.pdfGen.GenerateReportPDF(ctx, report)
}

// DashboardStats construye el resumen del dashboard del afiliado.
//
// Cuatro consultas en paralelo:
//  1. Totals           → totalLinks + totalClicks + totalConversions
//  2. ApprovedSummary  → totalRevenue + totalCommission (solo approved + paid)
//  3. PendingCommission→ pendingCommission (solo pending)
//  4. Recent / Top     → widgets de actividad
//
// El dashboard es una unidad: si cualquier consulta falla, falla entero.
// Un dashboard con totales reales y widgets vacíos mentiría en silencio.
func (uc *ReportUseCase) DashboardStats(ctx context.Context, userID string) (*dto.DashboardStatsResponse, error) {
	type totalsResult struct {
		totals repository.LinkTotals
		err    error
	}
	type summaryResult struct {
		summary repository.RevenueSummary
		err     error
	}
	type pendingResult struct {
		pending decimal.Decimal
		err     error
	}
	type widgetsResult struct {
		recent []repository.ConversionWithCompany
		top    []repository.LinkWithCompany
		err    error
	}

	totalsCh := make(chan totalsResult, 1)
	summaryCh := make(chan summaryResult, 1)
	pendingCh := make(chan pendingResult, 1)
	widgetsCh := make(chan widgetsResult, 1)

	go func() {
		totals, err := uc.linkRepo.Totals(ctx, userID)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		summary, err := uc.convRepo.ApprovedSummary(ctx, userID)
		summaryCh <- summaryResult{summary, err}
	}()
	go func() {
		pending, err := uc.convRepo.PendingCommission(ctx, userID)
		pendingCh <- pendingResult{pending, err}
	}()
	go func() {
		recent, err := uc.convRepo.Recent(ctx, userID, dashboardRecentConvs)
		if err != nil {
			widgetsCh <- widgetsResult{err: err}
			return
		}
		top, err := uc.linkRepo.TopByPerformance(ctx, userID, dashboardTopLinks)
		widgetsCh <- widgetsResult{recent, top, err}
	}()

	totals := <-totalsCh
	summary := <-summaryCh
	pending := <-pendingCh
	widgets := <-widgetsCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de enlaces: %w", totals.err)
	}
	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumen confirmado: %w", summary.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: comisión pendiente: %w", pending.err)
	}
	if widgets.err != nil {
		return nil, fmt.Errorf("dashboard: widgets de actividad: %w", widgets.err)
	}

	recent := make([]dto.ConversionResponse, 0, len(widgets.recent))
	for i := range widgets.recent {
		c := &widgets.recent[i]
		recent = append(recent, dto.ConversionResponse{
			ID:          c.ID,
			LinkID:      c.LinkID,
			UserID:      c.UserID,
			CompanyID:   c.CompanyID,
			Revenue:     c.Revenue,
			Commission:  c.Commission,
			Status:      c.Status,
			ConvertedAt: c.ConvertedAt,
			CompanyName: c.CompanyName,
		})
	}
	top := make([]dto.LinkResponse, 0, len(widgets.top))
	for i := range widgets.top {
		l := &widgets.top[i]
		top = append(top, dto.LinkResponse{
			ID:             l.ID,
			UserID:         l.UserID,
			CompanyID:      l.CompanyID,
			TrackingCode:   l.TrackingCode,
			PhoneNumber:    l.PhoneNumber,
			GeneratedURL:   l.GeneratedURL,
			Clicks:         l.Clicks,
			Conversions:    l.Conversions,
			CreatedAt:      l.CreatedAt,
			CompanyName:    l.CompanyName,
			Category:       l.Category,
			CommissionRate: l.CommissionRate,
			CommissionType: l.CommissionType,
		})
	}

	return &dto.DashboardStatsResponse{
		TotalLinks:        totals.totals.Links,
		TotalClicks:       totals.totals.Clicks,
		TotalConversions:  totals.totals.Conversions,
		TotalRevenue:      summary.summary.Revenue.Round(2),
		TotalCommission:   summary.summary.Commission.Round(2),
		PendingCommission: pending.pending.Round(2),
		RecentConversions: recent,
		TopLinks:          top,
	}, nil
}

// ChartData devuelve la serie diaria de conversiones y comisión del usuario.
// period acepta 7days, 30days y 90days; cualquier otro valor devuelve la
// serie completa sin filtro.
func (uc *ReportUseCase) ChartData(ctx context.Context, userID, period string) ([]dto.ChartPointResponse, error) {
	var since *time.Time
	var days int
	switch period {
	case "7days":
		days = 7
	case "30days":
		days = 30
	case "90days":
		days = 90
	}
	if days > 0 {
		t := time.Now().AddDate(0, 0, -days)
		since = &t
	}
	points, err := uc.convRepo.ChartData(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChartPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ChartPointResponse{
			Date:        p.Date,
			Conversions: p.Conversions,
			Commission:  p.Commission,
		})
	}
	return out, nil
}

// Generate construye el reporte del rango [startDate, endDate] (inclusivo,
// formato YYYY-MM-DD, ambas fechas o ninguna). Con save=true persiste además
// un snapshot del resultado; el snapshot exige rango acotado.
func (uc *ReportUseCase) Generate(ctx context.Context, userID, startDate, endDate string, save bool) (*dto.ReportResponse, error) {
	dateRange, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if save && !dateRange.Bounded() {
		return nil, domain.ErrInvalidInput
	}

	rows, err := uc.convRepo.ReportRows(ctx, userID, dateRange)
	if err != nil {
		return nil, err
	}
	summary, err := uc.convRepo.ReportSummary(ctx, userID, dateRange)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportResponse{
		Summary: dto.ReportSummaryDTO{
			TotalConversions:   summary.TotalConversions,
			TotalRevenue:       summary.TotalRevenue.Round(2),
			TotalCommission:    summary.TotalCommission.Round(2),
			ApprovedCommission: summary.ApprovedCommission.Round(2),
			PendingCommission:  summary.PendingCommission.Round(2),
		},
		Data:   make([]dto.ReportRowDTO, 0, len(rows)),
		Period: dto.ReportPeriod{Start: startDate, End: endDate},
	}
	for _, r := range rows {
		resp.Data = append(resp.Data, dto.ReportRowDTO{
			ID:           r.ID,
			ConvertedAt:  r.ConvertedAt,
			CompanyName:  r.CompanyName,
			Category:     r.Category,
			Revenue:      r.Revenue,
			Commission:   r.Commission,
			Status:       r.Status,
			TrackingCode: r.TrackingCode,
			PhoneNumber:  r.PhoneNumber,
		})
	}

	if save {
		if err := uc.saveSnapshot(ctx, userID, dateRange, resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// Monthly devuelve los últimos 12 meses con actividad, más reciente primero.
func (uc *ReportUseCase) Monthly(ctx context.Context, userID string) ([]dto.MonthlyRowResponse, error) {
	rows, err := uc.convRepo.Monthly(ctx, userID, monthlyReportMonths)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlyRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyRowResponse{
			Month:       r.Month,
			Conversions: r.Conversions,
			Revenue:     r.Revenue.Round(2),
			Commission:  r.Commission.Round(2),
		})
	}
	return out, nil
}

// Saved lista los snapshots persistidos del usuario, más reciente primero.
func (uc *ReportUseCase) Saved(ctx context.Context, userID string) ([]dto.SavedReportResponse, error) {
	snaps, err := uc.reportRepo.ListByUser(ctx, userID, savedReportsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SavedReportResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, dto.SavedReportResponse{
			ID:               s.ID,
			ReportType:       s.ReportType,
			StartDate:        s.StartDate.Format(reportDateLayout),
			EndDate:          s.EndDate.Format(reportDateLayout),
			TotalClicks:      s.TotalClicks,
			TotalConversions: s.TotalConversions,
			TotalRevenue:     s.TotalRevenue.Round(2),
			TotalCommission:  s.TotalCommission.Round(2),
			Data:             json.RawMessage(s.Data),
			CreatedAt:        s.CreatedAt,
		})
	}
	return out, nil
}

func (uc *ReportUseCase) saveSnapshot(ctx context.Context, userID string, r repository.DateRange, resp *dto.ReportResponse) error {
	data, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}
	totals, err := uc.linkRepo.Totals(ctx, userID)
	if err != nil {
		return err
	}
	return uc.reportRepo.Create(ctx, &entity.Report{
		ID:               uuid.New().String(),
		UserID:           userID,
		ReportType:       entity.ReportCustom,
		StartDate:        *r.Start,
		EndDate:          *r.End,
		TotalClicks:      totals.Clicks,
		TotalConversions: resp.Summary.TotalConversions,
		TotalRevenue:     resp.Summary.TotalRevenue,
		TotalCommission:  resp.Summary.TotalCommission,
		Data:             data,
		CreatedAt:        time.Now(),
	})
}

// parseRange valida el par de fechas: ambas presentes (rango acotado) o
// ambas ausentes (sin filtro). Un extremo suelto es ErrInvalidInput.
func parseRange(startDate, endDate string) (repository.DateRange, error) {
	if startDate == "" && endDate == "" {
		return repository.DateRange{}, nil
	}
	if startDate == "" || endDate == "" {
		return repository.DateRange{}, domain.ErrInvalidInput
	}
	start, err := time.Parse(reportDateLayout, startDate)
	if err != nil {
		return repository.DateRange{}, domain.ErrInvalidInput
	}
	end, err := time.Parse(reportDateLayout, endDate)
	if err != nil {
		return repository.DateRange{}, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return repository.DateRange{}, domain.ErrInvalidInput
	}
	return repository.DateRange{Start: &start, End: &end}, nil
}
