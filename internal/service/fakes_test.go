package service

import (
	"context"
	"sort"
	"strings"

	"github.com/qrkeep/qrkeep/internal/model"
	"github.com/qrkeep/qrkeep/internal/repository"
)

// fakeUserStore is an in-memory UserStore for tests.
type fakeUserStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	u := *user
	f.byID[u.ID] = &u
	f.byEmail[u.Email] = &u
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

// fakeQRStore is an in-memory QRStore for tests.
type fakeQRStore struct {
	records []*model.QRCode
}

func (f *fakeQRStore) CreateQR(_ context.Context, qr *model.QRCode) error {
	q := *qr
	f.records = append(f.records, &q)
	return nil
}

func (f *fakeQRStore) ListQRs(_ context.Context, userID string) ([]*model.QRCode, error) {
	owned := make([]*model.QRCode, 0)
	for _, qr := range f.records {
		if qr.UserID == userID {
			owned = append(owned, qr)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (f *fakeQRStore) RecentQRs(ctx context.Context, userID string, limit int) ([]*model.QRCode, error) {
	owned, err := f.ListQRs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(owned) > limit {
		owned = owned[:limit]
	}
	return owned, nil
}

func (f *fakeQRStore) SummaryQRs(ctx context.Context, userID string) (*model.QRSummary, error) {
	owned, err := f.ListQRs(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &model.QRSummary{Total: int64(len(owned))}
	projects := make(map[string]bool)
	for _, qr := range owned {
		if qr.Project != nil && strings.TrimSpace(*qr.Project) != "" {
			projects[*qr.Project] = true
		}
	}
	summary.Projects = int64(len(projects))
	summary.Last7 = summary.Total
	return summary, nil
}

func (f *fakeQRStore) DeleteQR(_ context.Context, id, userID string) (int64, error) {
	for i, qr := range f.records {
		if qr.ID == id && qr.UserID == userID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
