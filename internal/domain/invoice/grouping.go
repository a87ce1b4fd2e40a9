// Package invoice agrupa las líneas de una tagihan por equipo (servicio de dominio puro).
package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
)

// DefaultGroupKey agrupa las líneas sin EquipmentGroup.
const DefaultGroupKey = "__default__"

// GroupAggregate acumulados de un grupo de equipo.
type GroupAggregate struct {
	Key                string
	Label              string
	TotalQuantityUnits decimal.Decimal // Σ Measure()
	TotalFuelUnits     decimal.Decimal // Σ FuelQuantity
	TotalAmount        decimal.Decimal // Σ EffectiveTotal()
	Items              []entity.LineItem
}

// Grouping resultado de GroupLineItems. Keys conserva el orden de primera aparición,
// que es también el orden de las tablas en el documento.
type Grouping struct {
	Keys   []string
	Groups map[string]*GroupAggregate
}

// GroupLineItems particiona items en grupos. No modifica la entrada y devuelve
// estructuras nuevas en cada llamada.
func GroupLineItems(items []entity.LineItem) Grouping {
	g := Grouping{
		Keys:   make([]string, 0),
		Groups: make(map[string]*GroupAggregate),
	}
	for _, it := range items {
		key := GroupKey(it)
		agg, ok := g.Groups[key]
		if !ok {
			agg = &GroupAggregate{Key: key}
			g.Groups[key] = agg
			g.Keys = append(g.Keys, key)
		}
		agg.TotalQuantityUnits = agg.TotalQuantityUnits.Add(it.Measure())
		agg.TotalFuelUnits = agg.TotalFuelUnits.Add(it.FuelQuantity)
		agg.TotalAmount = agg.TotalAmount.Add(it.EffectiveTotal())
		if agg.Label == "" {
			agg.Label = firstNonEmpty(it.EquipmentGroup, it.Name)
		}
		agg.Items = append(agg.Items, it)
	}
	for i, key := range g.Keys {
		if g.Groups[key].Label == "" {
			g.Groups[key].Label = fmt.Sprintf("Unit %d", i+1)
		}
	}
	return g
}

// GroupKey devuelve la clave de grupo de una línea.
func GroupKey(it entity.LineItem) string {
	if key := strings.TrimSpace(it.EquipmentGroup); key != "" {
		return key
	}
	return DefaultGroupKey
}

// Ordered devuelve los agregados en el orden de Keys.
func (g Grouping) Ordered() []*GroupAggregate {
	out := make([]*GroupAggregate, 0, len(g.Keys))
	for _, k := range g.Keys {
		out = append(out, g.Groups[k])
	}
	return out
}

// Len número de grupos.
func (g Grouping) Len() int { return len(g.Keys) }

// GrandTotal Σ TotalAmount de todos los grupos.
func (g Grouping) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, agg := range g.Groups {
		total = total.Add(agg.TotalAmount)
	}
	return total
}

// TotalFuelUnits Σ litros de todos los grupos.
func (g Grouping) TotalFuelUnits() decimal.Decimal {
	total := decimal.Zero
	for _, agg := range g.Groups {
		total = total.Add(agg.TotalFuelUnits)
	}
	return total
}

// TotalQuantityUnits Σ cantidades de todos los grupos.
func (g Grouping) TotalQuantityUnits() decimal.Decimal {
	total := decimal.Zero
	for _, agg := range g.Groups {
		total = total.Add(agg.TotalQuantityUnits)
	}
	return total
}

// GrandTotalFor devuelve el total impreso: el de la factura si viene informado,
// si no la suma de los grupos.
func GrandTotalFor(inv entity.Invoice, g Grouping) decimal.Decimal {
	if !inv.Total.IsZero() {
		return inv.Total
	}
	return g.GrandTotal()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
