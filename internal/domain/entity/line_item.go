package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea de la tagihan (alquiler de equipo, servicio, etc.).
type LineItem struct {
	Name           string
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	LineTotal      decimal.Decimal // lo envía el backend; no se recalcula salvo que venga en cero
	Date           *time.Time
	DaysOrHours    decimal.Decimal
	FuelQuantity   decimal.Decimal // litros de solar
	FuelUnitPrice  decimal.Decimal
	EquipmentGroup string
}

// Measure es la cantidad facturada: DaysOrHours si viene informado, si no Quantity.
func (li LineItem) Measure() decimal.Decimal {
	if !li.DaysOrHours.IsZero() {
		return li.DaysOrHours
	}
	return li.Quantity
}

// EffectiveTotal devuelve LineTotal o, si es cero, el total derivado
// DaysOrHours*UnitPrice + FuelQuantity*FuelUnitPrice.
func (li LineItem) EffectiveTotal() decimal.Decimal {
	if !li.LineTotal.IsZero() {
		return li.LineTotal
	}
	return li.DaysOrHours.Mul(li.UnitPrice).Add(li.FuelQuantity.Mul(li.FuelUnitPrice))
}
