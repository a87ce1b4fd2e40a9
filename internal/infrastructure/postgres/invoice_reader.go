package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/domain"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
	"github.com/jhoicas/Tagihan-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceReader)(nil)
	_ billing.InvoiceSource        = (*InvoiceReader)(nil)
)

// InvoiceReader lectura de las tablas invoices / invoice_items del backend.
type InvoiceReader struct {
	q Querier
}

// NewInvoiceReader construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceReader(q Querier) *InvoiceReader {
	return &InvoiceReader{q: q}
}

const selectInvoice = `
	SELECT id::text, number, COALESCE(subject, ''),
	       COALESCE(recipient_name, ''), COALESCE(recipient_address, ''), COALESCE(recipient_email, ''),
	       date, due_date, COALESCE(location, ''), COALESCE(equipment_description, ''),
	       COALESCE(quantity_unit, ''), COALESCE(price_unit, ''), COALESCE(item_label, ''),
	       COALESCE(show_fuel_columns, false), COALESCE(fuel_included_note, false),
	       COALESCE(terbilang, ''), COALESCE(bank_account, ''), COALESCE(intro_text, ''),
	       COALESCE(total, 0), COALESCE(notes, '')
	FROM invoices
	WHERE id::text = $1 AND ($2 = '' OR company_id::text = $2)`

const selectItems = `
	SELECT COALESCE(name, ''), COALESCE(description, ''),
	       COALESCE(quantity, 0), COALESCE(unit_price, 0), COALESCE(line_total, 0),
	       date, COALESCE(days_or_hours, 0), COALESCE(fuel_quantity, 0), COALESCE(fuel_unit_price, 0),
	       COALESCE(equipment_group, '')
	FROM invoice_items
	WHERE invoice_id::text = $1
	ORDER BY position, id`

// GetInvoice implementa billing.InvoiceSource: cabecera + líneas.
func (r *InvoiceReader) GetInvoice(ctx context.Context, q billing.InvoiceQuery) (*entity.Invoice, error) {
	inv, err := r.GetByID(ctx, q.CompanyID, q.ID)
	if err != nil || inv == nil {
		return nil, err
	}
	if inv.Items, err = r.GetItems(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID obtiene la cabecera de una tagihan.
func (r *InvoiceReader) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, selectInvoice, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryErr("get invoice", err)
	}
	return inv, nil
}

// GetItems obtiene las líneas de una tagihan.
func (r *InvoiceReader) GetItems(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	rows, err := r.q.Query(ctx, selectItems, invoiceID)
	if err != nil {
		return nil, wrapQueryErr("list invoice items", err)
	}
	defer rows.Close()

	var list []entity.LineItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// scanner lo cumplen pgx.Row y pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row scanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var date, due *time.Time
	o := &inv.Options
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Subject,
		&inv.RecipientName, &inv.RecipientAddress, &inv.RecipientEmail,
		&date, &due, &inv.Location, &inv.EquipmentDescription,
		&o.QuantityUnit, &o.PriceUnit, &o.ItemLabel,
		&o.ShowFuelColumns, &o.FuelIncludedNote,
		&o.Terbilang, &o.BankAccount, &o.IntroText,
		&inv.Total, &inv.Notes,
	)
	if err != nil {
		return nil, err
	}
	if date != nil {
		inv.Date = *date
	}
	inv.DueDate = due
	return &inv, nil
}

func scanItem(row scanner) (entity.LineItem, error) {
	var it entity.LineItem
	var qty, price, total, days, fuel, fuelPrice decimal.Decimal
	err := row.Scan(
		&it.Name, &it.Description,
		&qty, &price, &total,
		&it.Date, &days, &fuel, &fuelPrice,
		&it.EquipmentGroup,
	)
	if err != nil {
		return entity.LineItem{}, err
	}
	it.Quantity, it.UnitPrice, it.LineTotal = qty, price, total
	it.DaysOrHours, it.FuelQuantity, it.FuelUnitPrice = days, fuel, fuelPrice
	return it, nil
}

func wrapQueryErr(op string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: esquema del backend no encontrado: %w", op, domain.ErrUpstream)
	}
	return fmt.Errorf("%s: %w", op, err)
}
