package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/affiliate-portal/internal/application/conversions"
	"github.com/tu-usuario/affiliate-portal/internal/domain/repository"
)

var _ conversions.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Lo usa el registro de conversiones para escribir la
// fila del ledger y el contador del enlace como una sola unidad.
func (r *TxRunner) Run(ctx context.Context, fn func(
	convRepo repository.ConversionRepository,
	linkRepo repository.LinkRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	convRepo := NewConversionRepository(tx)
	linkRepo := NewLinkRepository(tx)

	if err := fn(convRepo, linkRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
