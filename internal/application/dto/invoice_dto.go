package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tagihan-api/internal/domain"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
	"github.com/jhoicas/Tagihan-api/pkg/locale"
)

// InvoiceRequest tagihan ya calculada. Es el body de POST /api/invoices/pdf y
// también el formato en que el backend devuelve GET /api/invoices/:id.
type InvoiceRequest struct {
	ID                   string                `json:"id,omitempty"`
	Number               string                `json:"number" validate:"required,max=64"`
	Subject              string                `json:"subject" validate:"max=255"`
	RecipientName        string                `json:"recipient_name" validate:"max=255"`
	RecipientAddress     string                `json:"recipient_address,omitempty" validate:"max=500"`
	RecipientEmail       string                `json:"recipient_email,omitempty" validate:"omitempty,email"`
	Date                 string                `json:"date,omitempty"`     // YYYY-MM-DD o RFC3339
	DueDate              string                `json:"due_date,omitempty"` // YYYY-MM-DD o RFC3339
	Location             string                `json:"location,omitempty" validate:"max=255"`
	EquipmentDescription string                `json:"equipment_description,omitempty" validate:"max=255"`
	Items                []LineItemRequest     `json:"items" validate:"max=1000,dive"`
	Options              InvoiceOptionsRequest `json:"options"`
	Total                decimal.Decimal       `json:"total"`
	Notes                string                `json:"notes,omitempty" validate:"max=2000"`
	Filename             string                `json:"filename,omitempty" validate:"max=200"`
}

// LineItemRequest línea de la tagihan.
type LineItemRequest struct {
	Name           string          `json:"name" validate:"max=255"`
	Description    string          `json:"description,omitempty" validate:"max=500"`
	Quantity       decimal.Decimal `json:"quantity" validate:"gte=0"`
	UnitPrice      decimal.Decimal `json:"unit_price" validate:"gte=0"`
	LineTotal      decimal.Decimal `json:"line_total"`
	Date           string          `json:"date,omitempty"`
	DaysOrHours    decimal.Decimal `json:"days_or_hours" validate:"gte=0"`
	FuelQuantity   decimal.Decimal `json:"fuel_quantity" validate:"gte=0"`
	FuelUnitPrice  decimal.Decimal `json:"fuel_unit_price" validate:"gte=0"`
	EquipmentGroup string          `json:"equipment_group,omitempty" validate:"max=255"`
}

// InvoiceOptionsRequest opciones de formato.
type InvoiceOptionsRequest struct {
	QuantityUnit     string `json:"quantity_unit,omitempty" validate:"max=32"`
	PriceUnit        string `json:"price_unit,omitempty" validate:"max=32"`
	ItemLabel        string `json:"item_label,omitempty" validate:"max=64"`
	ShowFuelColumns  bool   `json:"show_fuel_columns"`
	FuelIncludedNote bool   `json:"fuel_included_note"`
	Terbilang        string `json:"terbilang,omitempty" validate:"max=500"`
	BankAccount      string `json:"bank_account,omitempty" validate:"max=255"`
	IntroText        string `json:"intro_text,omitempty" validate:"max=2000"`
}

// ToEntity convierte y valida las fechas. Una fecha mal formada devuelve
// domain.ErrInvalidInput.
func (r InvoiceRequest) ToEntity() (entity.Invoice, error) {
	inv := entity.Invoice{
		ID:                   r.ID,
		Number:               strings.TrimSpace(r.Number),
		Subject:              r.Subject,
		RecipientName:        r.RecipientName,
		RecipientAddress:     r.RecipientAddress,
		RecipientEmail:       r.RecipientEmail,
		Location:             r.Location,
		EquipmentDescription: r.EquipmentDescription,
		Total:                r.Total,
		Notes:                r.Notes,
		Options: entity.InvoiceOptions{
			QuantityUnit:     r.Options.QuantityUnit,
			PriceUnit:        r.Options.PriceUnit,
			ItemLabel:        r.Options.ItemLabel,
			ShowFuelColumns:  r.Options.ShowFuelColumns,
			FuelIncludedNote: r.Options.FuelIncludedNote,
			Terbilang:        r.Options.Terbilang,
			BankAccount:      r.Options.BankAccount,
			IntroText:        r.Options.IntroText,
		},
	}

	date, err := optionalDate("date", r.Date)
	if err != nil {
		return entity.Invoice{}, err
	}
	if date != nil {
		inv.Date = *date
	}
	if inv.DueDate, err = optionalDate("due_date", r.DueDate); err != nil {
		return entity.Invoice{}, err
	}

	inv.Items = make([]entity.LineItem, 0, len(r.Items))
	for i, it := range r.Items {
		itemDate, err := optionalDate(fmt.Sprintf("items[%d].date", i), it.Date)
		if err != nil {
			return entity.Invoice{}, err
		}
		inv.Items = append(inv.Items, entity.LineItem{
			Name:           it.Name,
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			LineTotal:      it.LineTotal,
			Date:           itemDate,
			DaysOrHours:    it.DaysOrHours,
			FuelQuantity:   it.FuelQuantity,
			FuelUnitPrice:  it.FuelUnitPrice,
			EquipmentGroup: it.EquipmentGroup,
		})
	}
	return inv, nil
}

func optionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, ok := locale.ParseISODate(s)
	if !ok {
		return nil, fmt.Errorf("%w: %s: fecha inválida %q", domain.ErrInvalidInput, field, s)
	}
	return &t, nil
}

// InvoicePreviewResponse agrupación y terbilang sin generar el PDF.
type InvoicePreviewResponse struct {
	ID         string          `json:"id,omitempty"`
	Number     string          `json:"number"`
	Filename   string          `json:"filename"`
	Groups     []GroupPreview  `json:"groups"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Formatted  string          `json:"grand_total_formatted"`
	Terbilang  string          `json:"terbilang"`
}

// GroupPreview un grupo de equipo en la vista previa.
type GroupPreview struct {
	Key                string          `json:"key"`
	Label              string          `json:"label"`
	Items              int             `json:"items"`
	TotalQuantityUnits decimal.Decimal `json:"total_quantity_units"`
	TotalFuelUnits     decimal.Decimal `json:"total_fuel_units"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
}

// TerbilangResponse respuesta de GET /api/terbilang.
type TerbilangResponse struct {
	Value  string `json:"value"`
	Words  string `json:"words"`
	Rupiah string `json:"rupiah"`
}
