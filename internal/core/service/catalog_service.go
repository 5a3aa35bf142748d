package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

const msgCreateFallback = "Erreur lors de la création de la publication"

// CatalogService serves the public listing views and listing creation.
type CatalogService struct {
	pubs           ports.PublicationAPI
	validate       *validator.Validate
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewCatalogService(pubs ports.PublicationAPI, maxUploadBytes int64, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		pubs:           pubs,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (s *CatalogService) Catalog(ctx context.Context) ([]domain.Publication, error) {
	return s.pubs.Catalog(ctx)
}

func (s *CatalogService) PublicationsPage(ctx context.Context) ([]domain.Publication, error) {
	return s.pubs.PublicationsPage(ctx)
}

func (s *CatalogService) ByUser(ctx context.Context, userID int64) ([]domain.Publication, error) {
	if userID == 0 {
		return nil, domain.ErrMissingUser
	}
	return s.pubs.ByUser(ctx, userID)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Publication, error) {
	return s.pubs.Get(ctx, id)
}

// Create validates the listing before any network call and routes to the
// multipart endpoint when an image accompanies it.
func (s *CatalogService) Create(ctx context.Context, input ports.CreatePublicationInput, file *domain.Upload) (*domain.Publication, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.UtilisateurID == 0 {
		return nil, domain.ErrMissingUser
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, humanize(err)
	}
	if file != nil && file.Size > s.maxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}

	var (
		pub *domain.Publication
		err error
	)
	if file != nil {
		pub, err = s.pubs.CreateWithFile(ctx, input, file)
	} else {
		pub, err = s.pubs.Create(ctx, input)
	}
	if err != nil {
		return nil, classify(err, msgCreateFallback)
	}
	s.logger.Info().Int64("publication_id", pub.ID).Int64("user_id", input.UtilisateurID).Msg("publication created")
	return pub, nil
}

// FilterPublications refines an already-fetched list. The query matches the
// title case-insensitively as a substring; the type matches exactly. An empty
// filter returns the input untouched.
func FilterPublications(list []domain.Publication, filter ports.CatalogFilter) []domain.Publication {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if query == "" && filter.Type == "" {
		return list
	}
	out := make([]domain.Publication, 0, len(list))
	for _, pub := range list {
		if query != "" && !strings.Contains(strings.ToLower(pub.Title), query) {
			continue
		}
		if filter.Type != "" && pub.Type != filter.Type {
			continue
		}
		out = append(out, pub)
	}
	return out
}

var _ ports.CatalogService = (*CatalogService)(nil)
