package document

import "fmt"

// Textos fijos de la tagihan (en indonesio, como se imprimen).
const (
	labelNumber    = "Nomor"
	labelSubject   = "Perihal"
	labelDueDate   = "Jatuh Tempo"
	labelTo        = "Kepada Yth."
	labelEmail     = "Email"
	greeting       = "Dengan hormat,"
	fuelIncluded   = "* Harga sudah termasuk solar (BBM)."
	closingText    = "Demikian surat tagihan ini kami sampaikan. Atas perhatian dan kerja samanya kami ucapkan terima kasih."
	notesHeading   = "Catatan:"
	summaryTitle   = "Rekapitulasi"
	totalLabel     = "Total"
	grandTotalText = "Grand Total"
	senderHeading  = "Hormat kami,"
	receiverHead   = "Penerima,"
	blankSignature = "(.................................)"
)

// introWithEquipment plantilla A: hay descripción de equipo y lugar del proyecto.
func introWithEquipment(equipment, location string) string {
	return fmt.Sprintf("Bersama ini kami sampaikan tagihan sewa %s untuk pekerjaan di %s, dengan rincian sebagai berikut:", equipment, location)
}

// introGeneric plantilla B.
func introGeneric() string {
	return "Bersama ini kami sampaikan tagihan atas pekerjaan yang telah kami laksanakan, dengan rincian sebagai berikut:"
}

func terbilangLine(words string) string {
	return fmt.Sprintf("Terbilang: (%s)", words)
}

func bankLine(account string) string {
	return "Pembayaran dapat ditransfer ke rekening: " + account
}
