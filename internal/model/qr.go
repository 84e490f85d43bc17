// Package model defines domain entities for the application.
package model

import "time"

// QRType is the kind of payload a QR record encodes.
type QRType string

const (
	QRTypeURL  QRType = "URL"
	QRTypeText QRType = "TEXT"
)

// NormalizeQRType maps arbitrary input to a valid QRType.
// Only the exact string "TEXT" yields QRTypeText; everything else is URL.
func NormalizeQRType(s string) QRType {
	if s == string(QRTypeText) {
		return QRTypeText
	}
	return QRTypeURL
}

// Default color specifiers applied when the client omits them.
const (
	DefaultColor   = "#000000"
	DefaultBgColor = "#ffffff"
)

// QRCode represents a stored QR record owned by a single user.
// Image rendering happens client-side; the server only stores the
// payload and presentation attributes.
type QRCode struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      QRType    `json:"type"`
	Color     string    `json:"color"`
	BgColor   string    `json:"bgColor"`
	Project   *string   `json:"project"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
}

// QRSummary aggregates a user's records for the dashboard.
// All fields are zero when the user has no rows, never null.
type QRSummary struct {
	Total    int64 `json:"total"`
	Last7    int64 `json:"last7days"`
	Projects int64 `json:"projects"`
}
