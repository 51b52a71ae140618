package entity

import "time"

// Guest is a single guest-book entry recorded at the reception desk.
type Guest struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"alamat"`
	Company         string    `json:"perusahaan"`
	PersonVisited   string    `json:"yang_dikunjungi"`
	VisitPurpose    string    `json:"maksud_kunjungan"`
	IdentityCardNo  string    `json:"tanda_pengenal"`
	Zone            string    `json:"zona"`
	Signature       string    `json:"signature,omitempty"` // image payload
	CreatedAt       time.Time `json:"created_at"`
}

// IsValidGuestZone reports whether z is a known facility access zone.
func IsValidGuestZone(z string) bool {
	switch z {
	case GuestZoneFree, GuestZoneRestricted, GuestZoneForbidden:
		return true
	}
	return false
}
