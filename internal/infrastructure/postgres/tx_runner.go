package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
)

var _ billing.InvoiceSource = (*SnapshotSource)(nil)

// beginner lo implementa *pgxpool.Pool.
type beginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

var _ beginner = (*pgxpool.Pool)(nil)

// TxRunner ejecuta callbacks dentro de una transacción de solo lectura.
type TxRunner struct {
	pool beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool beginner) *TxRunner {
	return &TxRunner{pool: pool}
}

// ReadOnly abre una transacción REPEATABLE READ de solo lectura, ejecuta fn con
// un lector atado a la tx y la cierra. Cabecera y líneas salen del mismo snapshot.
func (r *TxRunner) ReadOnly(ctx context.Context, fn func(reader *InvoiceReader) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceReader(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SnapshotSource InvoiceSource que lee cada tagihan dentro de ReadOnly.
type SnapshotSource struct {
	tx *TxRunner
}

// NewSnapshotSource construye la fuente sobre el runner.
func NewSnapshotSource(tx *TxRunner) *SnapshotSource {
	return &SnapshotSource{tx: tx}
}

// GetInvoice implementa billing.InvoiceSource.
func (s *SnapshotSource) GetInvoice(ctx context.Context, q billing.InvoiceQuery) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := s.tx.ReadOnly(ctx, func(reader *InvoiceReader) error {
		var err error
		inv, err = reader.GetInvoice(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
