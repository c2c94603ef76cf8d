package repository

import (
	"context"

	"github.com/tu-usuario/affiliate-portal/internal/domain/entity"
)

// ReportRepository puerto de persistencia para snapshots de reportes.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Report, error)
}
