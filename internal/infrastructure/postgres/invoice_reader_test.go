package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/domain"
)

// fakeRow copia values en dest por posición.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinos, %d valores", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *decimal.Decimal:
			*p = r.values[i].(decimal.Decimal)
		case **time.Time:
			if r.values[i] == nil {
				*p = nil
			} else {
				t := r.values[i].(time.Time)
				*p = &t
			}
		default:
			return fmt.Errorf("scan: tipo no soportado %T", d)
		}
	}
	return nil
}

type fakeRows struct {
	pgx.Rows
	rows   [][]any
	i      int
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return fakeRow{values: r.rows[r.i-1]}.Scan(dest...) }
func (r *fakeRows) Err() error             { return nil }
func (r *fakeRows) Close()                 { r.closed = true }

type fakeQuerier struct {
	header   fakeRow
	items    [][]any
	queryErr error
	lastArgs []any
}

func (q *fakeQuerier) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return &fakeRows{rows: q.items}, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.lastArgs = args
	return q.header
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func headerValues() []any {
	date := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	return []any{
		"inv-1", "INV/001", "Sewa Excavator",
		"PT Maju", "Jl. Sudirman 1", "ap@maju.co.id",
		date, nil, "Jakarta", "1 unit Excavator PC200",
		"Jam", "Jam", "", true, true,
		"", "BCA 123", "",
		d("3572000"), "",
	}
}

func itemValues(group string) []any {
	return []any{
		"Excavator", "Galian",
		d("10"), d("250000"), d("0"),
		nil, d("10"), d("20"), d("6800"),
		group,
	}
}

func TestInvoiceReader_GetInvoice(t *testing.T) {
	q := &fakeQuerier{
		header: fakeRow{values: headerValues()},
		items:  [][]any{itemValues("A"), itemValues("B")},
	}
	inv, err := NewInvoiceReader(q).GetInvoice(context.Background(), billing.InvoiceQuery{ID: "inv-1", CompanyID: "c-1"})
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, "INV/001", inv.Number)
	assert.Equal(t, "Jakarta", inv.Location)
	assert.Nil(t, inv.DueDate)
	assert.Equal(t, 2025, inv.Date.Year())
	assert.True(t, inv.Options.ShowFuelColumns)
	assert.Equal(t, "Jam", inv.Options.QuantityUnit)
	assert.True(t, inv.Total.Equal(d("3572000")))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "B", inv.Items[1].EquipmentGroup)
	assert.True(t, inv.Items[0].EffectiveTotal().Equal(d("2636000")))
	assert.Equal(t, []any{"inv-1", "c-1"}, q.lastArgs)
}

func TestInvoiceReader_NotFound(t *testing.T) {
	q := &fakeQuerier{header: fakeRow{err: pgx.ErrNoRows}}
	inv, err := NewInvoiceReader(q).GetInvoice(context.Background(), billing.InvoiceQuery{ID: "x"})
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestInvoiceReader_UndefinedTable(t *testing.T) {
	q := &fakeQuerier{header: fakeRow{err: &pgconn.PgError{Code: "42P01"}}}
	_, err := NewInvoiceReader(q).GetByID(context.Background(), "", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestInvoiceReader_ItemsError(t *testing.T) {
	q := &fakeQuerier{header: fakeRow{values: headerValues()}, queryErr: errors.New("conn reset")}
	_, err := NewInvoiceReader(q).GetInvoice(context.Background(), billing.InvoiceQuery{ID: "inv-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list invoice items")
}

type fakeTx struct {
	pgx.Tx
	*fakeQuerier
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return tx.fakeQuerier.Query(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return tx.fakeQuerier.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Commit(context.Context) error   { tx.committed = true; return nil }
func (tx *fakeTx) Rollback(context.Context) error { tx.rolledBack = true; return nil }

type fakeBeginner struct {
	tx   *fakeTx
	opts pgx.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.opts = opts
	return b.tx, nil
}

func TestSnapshotSource_ReadOnlyTx(t *testing.T) {
	tx := &fakeTx{fakeQuerier: &fakeQuerier{
		header: fakeRow{values: headerValues()},
		items:  [][]any{itemValues("")},
	}}
	b := &fakeBeginner{tx: tx}

	inv, err := NewSnapshotSource(NewTxRunner(b)).GetInvoice(context.Background(), billing.InvoiceQuery{ID: "inv-1"})
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Len(t, inv.Items, 1)
	assert.Equal(t, pgx.ReadOnly, b.opts.AccessMode)
	assert.Equal(t, pgx.RepeatableRead, b.opts.IsoLevel)
	assert.True(t, tx.committed)
}

func TestSnapshotSource_ErrorSkipsCommit(t *testing.T) {
	tx := &fakeTx{fakeQuerier: &fakeQuerier{header: fakeRow{err: errors.New("boom")}}}
	_, err := NewSnapshotSource(NewTxRunner(&fakeBeginner{tx: tx})).GetInvoice(context.Background(), billing.InvoiceQuery{ID: "x"})
	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
