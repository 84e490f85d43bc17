package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qrkeep/qrkeep/internal/model"
)

// QR service errors.
var (
	ErrTitleContentRequired = errors.New("title and content are required")
	// ErrQRNotFound covers both a missing id and someone else's record
	// so responses never reveal which one it was.
	ErrQRNotFound = errors.New("qr record not found")
)

// Recent-list bounds. The ceiling is hard regardless of caller intent.
const (
	DefaultRecentLimit = 4
	MaxRecentLimit     = 20
)

// QRStore is the persistence boundary for QR records.
type QRStore interface {
	CreateQR(ctx context.Context, qr *model.QRCode) error
	ListQRs(ctx context.Context, userID string) ([]*model.QRCode, error)
	RecentQRs(ctx context.Context, userID string, limit int) ([]*model.QRCode, error)
	SummaryQRs(ctx context.Context, userID string) (*model.QRSummary, error)
	DeleteQR(ctx context.Context, id, userID string) (int64, error)
}

// QRService handles QR record business logic. Every operation is scoped
// to the owner id taken from the verified token, never from client input.
type QRService struct {
	store QRStore
}

// NewQRService creates a new QRService.
func NewQRService(store QRStore) *QRService {
	return &QRService{store: store}
}

// CreateQRInput defines input for creating a QR record.
type CreateQRInput struct {
	OwnerID string
	Title   string
	Content string
	Type    string
	Color   string
	BgColor string
	Project string
}

// Create validates input, applies defaults and persists a record.
func (s *QRService) Create(ctx context.Context, input CreateQRInput) (*model.QRCode, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrTitleContentRequired
	}

	color := input.Color
	if color == "" {
		color = model.DefaultColor
	}

	bgColor := input.BgColor
	if bgColor == "" {
		bgColor = model.DefaultBgColor
	}

	// Blank project means unassigned, stored as NULL
	var project *string
	if strings.TrimSpace(input.Project) != "" {
		project = &input.Project
	}

	qr := &model.QRCode{
		ID:        uuid.New().String(),
		UserID:    input.OwnerID,
		Title:     input.Title,
		Content:   input.Content,
		Type:      model.NormalizeQRType(input.Type),
		Color:     color,
		BgColor:   bgColor,
		Project:   project,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateQR(ctx, qr); err != nil {
		return nil, err
	}

	return qr, nil
}

// List returns all of the owner's records, newest first.
func (s *QRService) List(ctx context.Context, ownerID string) ([]*model.QRCode, error) {
	return s.store.ListQRs(ctx, ownerID)
}

// Summary returns the owner's dashboard aggregates.
func (s *QRService) Summary(ctx context.Context, ownerID string) (*model.QRSummary, error) {
	return s.store.SummaryQRs(ctx, ownerID)
}

// Recent returns the owner's newest records bounded by limit.
// Non-positive limits fall back to the default; anything above the
// ceiling is clamped.
func (s *QRService) Recent(ctx context.Context, ownerID string, limit int) ([]*model.QRCode, error) {
	return s.store.RecentQRs(ctx, ownerID, ClampRecentLimit(limit))
}

// Delete removes the owner's record. A missing id and a foreign record
// both map to ErrQRNotFound.
func (s *QRService) Delete(ctx context.Context, id, ownerID string) error {
	affected, err := s.store.DeleteQR(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrQRNotFound
	}
	return nil
}

// ClampRecentLimit normalizes a recent-list limit into [1, MaxRecentLimit].
func ClampRecentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}
