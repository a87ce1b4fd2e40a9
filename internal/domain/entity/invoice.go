package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice es la tagihan tal como la devuelve el backend, ya calculada.
// El servicio solo la formatea; nunca la persiste ni la modifica.
type Invoice struct {
	ID                   string
	Number               string
	Subject              string
	RecipientName        string
	RecipientAddress     string
	RecipientEmail       string
	Date                 time.Time
	DueDate              *time.Time
	Location             string // lugar del proyecto; también encabeza la fecha ("Jakarta, 05 Januari 2025")
	EquipmentDescription string // ej. "1 unit Excavator PC200"
	Items                []LineItem
	Options              InvoiceOptions
	Total                decimal.Decimal // cero = se calcula a partir de los grupos
	Notes                string
}

// InvoiceOptions opciones de formato elegidas en el dashboard.
type InvoiceOptions struct {
	QuantityUnit     string // "Jam", "Hari", "Rit"...
	PriceUnit        string
	ItemLabel        string // encabezado de la columna de descripción (sin columnas de solar)
	ShowFuelColumns  bool
	FuelIncludedNote bool
	Terbilang        string // texto personalizado; vacío = automático
	BankAccount      string
	IntroText        string // reemplaza el párrafo de introducción
}

// Valores por defecto de las etiquetas de columna.
const (
	DefaultQuantityUnit = "Hari"
	DefaultPriceUnit    = "Hari"
	DefaultItemLabel    = "Uraian"
)

// WithDefaults devuelve una copia con las etiquetas vacías rellenadas.
func (o InvoiceOptions) WithDefaults() InvoiceOptions {
	if o.QuantityUnit == "" {
		o.QuantityUnit = DefaultQuantityUnit
	}
	if o.PriceUnit == "" {
		o.PriceUnit = o.QuantityUnit
	}
	if o.ItemLabel == "" {
		o.ItemLabel = DefaultItemLabel
	}
	return o
}
