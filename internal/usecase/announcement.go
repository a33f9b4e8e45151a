package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// AnnouncementUseCase manages broadcast announcements.
type AnnouncementUseCase struct {
	announcements repository.AnnouncementRepository
}

// NewAnnouncementUseCase constructs AnnouncementUseCase.
func NewAnnouncementUseCase(store repository.Store) *AnnouncementUseCase {
	return &AnnouncementUseCase{announcements: store.Announcements()}
}

// ListActive returns active announcements, newest first.
func (u *AnnouncementUseCase) ListActive(ctx context.Context) ([]model.Announcement, error) {
	return u.announcements.List(ctx, true)
}

// ListAll returns every announcement.
func (u *AnnouncementUseCase) ListAll(ctx context.Context) ([]model.Announcement, error) {
	return u.announcements.List(ctx, false)
}

// Create stores an announcement authored by authorID.
func (u *AnnouncementUseCase) Create(ctx context.Context, a *model.Announcement, authorID int64) error {
	if err := validateAnnouncement(a); err != nil {
		return err
	}
	a.AuthorID = authorID
	return u.announcements.Create(ctx, a)
}

// Update replaces title, content, severity and the active flag.
func (u *AnnouncementUseCase) Update(ctx context.Context, a *model.Announcement) error {
	if err := validateAnnouncement(a); err != nil {
		return err
	}
	return announcementErr(u.announcements.Update(ctx, a))
}

// Delete removes an announcement.
func (u *AnnouncementUseCase) Delete(ctx context.Context, id int64) error {
	return announcementErr(u.announcements.Delete(ctx, id))
}

func validateAnnouncement(a *model.Announcement) error {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	if a.Severity == "" {
		a.Severity = model.SeverityInfo
	}
	if a.Title == "" || a.Content == "" || !a.Severity.Valid() {
		return domainErrors.ErrInvalidInput
	}
	return nil
}

func announcementErr(err error) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return domainErrors.ErrAnnouncementNotFound
	}
	return err
}
