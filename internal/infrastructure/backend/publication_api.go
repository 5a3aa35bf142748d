package backend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
)

// PublicationsAPI wraps the public /api/pub routes.
type PublicationsAPI struct {
	c *Client
}

// Publications returns the public listings resource API.
func (c *Client) Publications() *PublicationsAPI {
	return &PublicationsAPI{c: c}
}

// Catalog returns the verified, catalog-placed subset of listings.
func (p *PublicationsAPI) Catalog(ctx context.Context) ([]domain.Publication, error) {
	return p.c.listPublications(ctx, "/api/pub")
}

// PublicationsPage returns the subset placed on the public publications page.
func (p *PublicationsAPI) PublicationsPage(ctx context.Context) ([]domain.Publication, error) {
	return p.c.listPublications(ctx, "/api/pub/publications-page")
}

// ByUser returns a user's own listings regardless of moderation state.
func (p *PublicationsAPI) ByUser(ctx context.Context, userID int64) ([]domain.Publication, error) {
	return p.c.listPublications(ctx, fmt.Sprintf("/api/pub/user/%d", userID))
}

// Get fetches one listing.
func (p *PublicationsAPI) Get(ctx context.Context, id int64) (*domain.Publication, error) {
	var out domain.Publication
	resp, err := p.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/api/pub/%d", id))
	if cerr := p.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Create posts a new listing without attachment.
func (p *PublicationsAPI) Create(ctx context.Context, input ports.CreatePublicationInput) (*domain.Publication, error) {
	var out domain.Publication
	resp, err := p.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&out).
		Post("/api/pub")
	if cerr := p.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// CreateWithFile posts a new listing as multipart form data with an attached
// file, matching the backend's /with-file contract.
func (p *PublicationsAPI) CreateWithFile(ctx context.Context, input ports.CreatePublicationInput, file *domain.Upload) (*domain.Publication, error) {
	var out domain.Publication
	req := p.c.r.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"title":         input.Title,
			"description":   input.Description,
			"type":          input.Type,
			"price":         strconv.FormatFloat(input.Price, 'f', -1, 64),
			"status":        string(domain.StatusUnprocessed),
			"utilisateurId": strconv.FormatInt(input.UtilisateurID, 10),
		}).
		SetResult(&out)
	if file != nil {
		req.SetFileReader("file", file.Name, file.Reader)
	}
	resp, err := req.Post("/api/pub/with-file")
	if cerr := p.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Delete removes one listing.
func (p *PublicationsAPI) Delete(ctx context.Context, id int64) error {
	resp, err := p.c.r.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/pub/%d", id))
	return p.c.check(resp, err)
}

func (c *Client) listPublications(ctx context.Context, path string) ([]domain.Publication, error) {
	var out []domain.Publication
	resp, err := c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Get(path)
	if cerr := c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return out, nil
}
