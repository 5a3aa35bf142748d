package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// ModerationService is the admin console over listings. Every mutation hits
// the backend and the caller re-fetches the list, so two admins editing the
// same listing resolve last-write-wins.
type ModerationService struct {
	admin  ports.AdminPublicationAPI
	logger zerolog.Logger
}

func NewModerationService(admin ports.AdminPublicationAPI, logger zerolog.Logger) *ModerationService {
	return &ModerationService{admin: admin, logger: logger}
}

// List applies the admin's view filter. Status takes precedence over
// UnverifiedOnly when both are set.
func (s *ModerationService) List(ctx context.Context, filter ports.ModerationFilter) ([]domain.Publication, error) {
	switch {
	case filter.Status != "":
		if !domain.ValidStatus(filter.Status) {
			return nil, domain.ErrInvalidStatus
		}
		return s.admin.ByStatus(ctx, filter.Status)
	case filter.UnverifiedOnly:
		return s.admin.Unverified(ctx)
	default:
		return s.admin.All(ctx)
	}
}

// Verify marks a listing approved. The backend requires the acting admin's
// identity; verifying an already-verified listing is a no-op on its end.
func (s *ModerationService) Verify(ctx context.Context, id, adminID int64) error {
	if adminID == 0 {
		return domain.ErrMissingUser
	}
	if _, err := s.admin.Verify(ctx, id, adminID); err != nil {
		return err
	}
	s.logger.Info().Int64("publication_id", id).Int64("admin_id", adminID).Msg("publication verified")
	return nil
}

func (s *ModerationService) Unverify(ctx context.Context, id int64) error {
	_, err := s.admin.Unverify(ctx, id)
	return err
}

func (s *ModerationService) Delete(ctx context.Context, id int64) error {
	if err := s.admin.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("publication_id", id).Msg("publication deleted by admin")
	return nil
}

// SetCatalogPlacement places or removes a listing from the customer catalog.
// Placing implies verifying: an unapproved listing must never surface there.
func (s *ModerationService) SetCatalogPlacement(ctx context.Context, id, adminID int64, placed bool) error {
	if placed {
		if err := s.Verify(ctx, id, adminID); err != nil {
			return err
		}
	}
	_, err := s.admin.SetCatalog(ctx, id, placed)
	return err
}

// SetPublicationsPlacement mirrors SetCatalogPlacement for the publications
// page.
func (s *ModerationService) SetPublicationsPlacement(ctx context.Context, id, adminID int64, placed bool) error {
	if placed {
		if err := s.Verify(ctx, id, adminID); err != nil {
			return err
		}
	}
	_, err := s.admin.SetPublicationsPage(ctx, id, placed)
	return err
}

func (s *ModerationService) SetPrice(ctx context.Context, id int64, price float64) error {
	if price <= 0 {
		return errors.New("le prix doit être supérieur à 0")
	}
	_, err := s.admin.SetPrice(ctx, id, price)
	return err
}

func (s *ModerationService) SetType(ctx context.Context, id int64, pubType string) error {
	valid := false
	for _, t := range domain.Types {
		if t == pubType {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("type de publication inconnu")
	}
	_, err := s.admin.SetType(ctx, id, pubType)
	return err
}

func (s *ModerationService) SetTitle(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("le titre est requis")
	}
	_, err := s.admin.SetTitle(ctx, id, title)
	return err
}

func (s *ModerationService) SetDescription(ctx context.Context, id int64, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errors.New("la description est requise")
	}
	_, err := s.admin.SetDescription(ctx, id, description)
	return err
}

// SetStatus accepts any valid status regardless of the current one. The
// workflow is a convention, not a state machine: jumping straight from
// "non traité" to "terminé" is allowed.
func (s *ModerationService) SetStatus(ctx context.Context, id int64, status domain.PublicationStatus) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	_, err := s.admin.SetStatus(ctx, id, status)
	return err
}

var _ ports.ModerationService = (*ModerationService)(nil)
