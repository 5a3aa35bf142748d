package domain

// CartItem references a publication placed in a user's cart. The publication
// fields are denormalized by the backend for display.
type CartItem struct {
	ID                     int64   `json:"id"`
	PublicationID          int64   `json:"publicationId"`
	PublicationTitle       string  `json:"publicationTitle"`
	PublicationDescription string  `json:"publicationDescription"`
	PublicationPrice       float64 `json:"publicationPrice"`
	PublicationFileURL     string  `json:"publicationFileUrl,omitempty"`
	Quantity               int     `json:"quantity"`
}

// LineTotal is the item's contribution to the cart total.
func (i CartItem) LineTotal() float64 {
	qty := i.Quantity
	if qty < 1 {
		qty = 1
	}
	return i.PublicationPrice * float64(qty)
}

// Cart is the per-user item collection.
type Cart struct {
	ID            int64      `json:"id"`
	UtilisateurID int64      `json:"utilisateurId"`
	Items         []CartItem `json:"items"`
}

// Total folds unit price × quantity over all items. The server-side total is
// never trusted for display.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// Empty reports whether the cart holds no items.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}
