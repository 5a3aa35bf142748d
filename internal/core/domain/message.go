package domain

import (
	"io"
	"time"
)

// Location is a device geolocation attached to a message.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Upload is a file attachment streamed to the backend.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Message is one entry of a two-party thread between a user and the support
// admin. At least one of content, file, or location is always present.
type Message struct {
	ID               int64     `json:"id"`
	Content          string    `json:"content"`
	SenderID         int64     `json:"senderId"`
	SenderUsername   string    `json:"senderUsername,omitempty"`
	SenderEmail      string    `json:"senderEmail,omitempty"`
	ReceiverID       int64     `json:"receiverId"`
	ReceiverUsername string    `json:"receiverUsername,omitempty"`
	ReceiverEmail    string    `json:"receiverEmail,omitempty"`
	FileURL          string    `json:"fileUrl,omitempty"`
	FileName         string    `json:"fileName,omitempty"`
	FileType         string    `json:"fileType,omitempty"`
	Location         *Location `json:"location,omitempty"`
	IsRead           bool      `json:"isRead"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

// Involves reports whether userID is a participant of the message.
func (m Message) Involves(userID int64) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
