package entity

import "time"

// WasteRecord tracks one entry of hazardous (B3) waste through intake,
// storage and treatment.
type WasteRecord struct {
	ID           string    `json:"id"`
	Kind         string    `json:"jenis"` // e.g. Oli bekas, Filter Bekas, Accu Bekas
	Quantity     float64   `json:"jumlah"`
	Unit         string    `json:"unit"` // Kg, Liter, TON
	IntakeDate   string    `json:"tanggal_masuk"`
	Source       string    `json:"sumber"` // Proses, Operasional, Kantor
	Status       string    `json:"status"`
	Treatment    string    `json:"perlakuan"`
	ManifestCode string    `json:"kode_manifestasi,omitempty"`
	Notes        string    `json:"catatan,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
