package entity

// Company datos de la empresa emisora que firman la tagihan.
// Se cargan desde la configuración (COMPANY_*), no desde el backend.
type Company struct {
	Name        string
	City        string // fallback de Invoice.Location en la línea de fecha
	SignerName  string
	SignerTitle string // ej. "Direktur"
	BankAccount string // fallback de InvoiceOptions.BankAccount
}
