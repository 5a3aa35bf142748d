package domain

import "time"

// PublicationStatus is the workflow state of a listing, set by an admin.
type PublicationStatus string

const (
	StatusUnprocessed PublicationStatus = "non traité"
	StatusInProgress  PublicationStatus = "en cours"
	StatusProcessed   PublicationStatus = "traité"
	StatusDone        PublicationStatus = "terminé"
)

// Statuses lists every workflow status, in display order.
var Statuses = []PublicationStatus{StatusUnprocessed, StatusInProgress, StatusProcessed, StatusDone}

// ValidStatus reports whether s is a known workflow status. There is no
// transition ordering: an admin may set any status directly, including
// backwards moves.
func ValidStatus(s PublicationStatus) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Publication types as the backend spells them.
const (
	TypeRepair   = "Reparation"
	TypePurchase = "Achat"
	TypeSale     = "Vente"
	TypeExchange = "exchange"
	TypeDonation = "donation"
	TypeOther    = "other"
)

// Types lists every publication type, in display order.
var Types = []string{TypeRepair, TypePurchase, TypeSale, TypeExchange, TypeDonation, TypeOther}

// Publication mirrors the backend listing record. Created by a user,
// moderated (verified, placed, edited) by an admin.
type Publication struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Price       float64           `json:"price"`
	Status      PublicationStatus `json:"status"`

	Verified      bool   `json:"verified"`
	VerifiedBy    int64  `json:"verifiedBy,omitempty"`
	InCatalog     bool   `json:"inCatalog"`
	OnPublicPage  bool   `json:"onPublicationsPage"`
	UtilisateurID int64  `json:"utilisateurId"`
	FileURL       string `json:"fileUrl,omitempty"`
	FileName      string `json:"fileName,omitempty"`
	FileType      string `json:"fileType,omitempty"`
	FileSize      int64  `json:"fileSize,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// HasImage reports whether the attached file can be rendered as an image.
func (p Publication) HasImage() bool {
	return p.FileURL != "" && len(p.FileType) >= 6 && p.FileType[:6] == "image/"
}
