package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fixer-market/fixer-web/internal/core/domain"
)

// AdminPublicationsAPI wraps the /api/admin/publications routes.
type AdminPublicationsAPI struct {
	c *Client
}

// AdminPublications returns the moderation resource API.
func (c *Client) AdminPublications() *AdminPublicationsAPI {
	return &AdminPublicationsAPI{c: c}
}

// All returns every listing including unverified ones.
func (a *AdminPublicationsAPI) All(ctx context.Context) ([]domain.Publication, error) {
	return a.c.listPublications(ctx, "/api/admin/publications")
}

// Unverified returns listings awaiting moderation.
func (a *AdminPublicationsAPI) Unverified(ctx context.Context) ([]domain.Publication, error) {
	return a.c.listPublications(ctx, "/api/admin/publications/unverified")
}

// ByStatus returns listings in one workflow status. The status values carry
// spaces and accents, so the path segment is escaped.
func (a *AdminPublicationsAPI) ByStatus(ctx context.Context, status domain.PublicationStatus) ([]domain.Publication, error) {
	return a.c.listPublications(ctx, "/api/admin/publications/status/"+url.PathEscape(string(status)))
}

// Verify marks a listing as verified by the given admin. The backend
// tolerates repeat calls on an already-verified listing.
func (a *AdminPublicationsAPI) Verify(ctx context.Context, id, adminID int64) (*domain.Publication, error) {
	var out domain.Publication
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]int64{"adminId": adminID}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/admin/publications/%d/verify", id))
	if cerr := a.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Unverify removes a listing from the verified set.
func (a *AdminPublicationsAPI) Unverify(ctx context.Context, id int64) (*domain.Publication, error) {
	var out domain.Publication
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/api/admin/publications/%d/unverify", id))
	if cerr := a.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}

// Delete removes a listing permanently.
func (a *AdminPublicationsAPI) Delete(ctx context.Context, id int64) error {
	resp, err := a.c.r.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/admin/publications/%d", id))
	return a.c.check(resp, err)
}

// SetCatalog toggles the catalog placement flag.
func (a *AdminPublicationsAPI) SetCatalog(ctx context.Context, id int64, placed bool) (*domain.Publication, error) {
	return a.putField(ctx, id, "catalog", map[string]bool{"inCatalog": placed})
}

// SetPublicationsPage toggles the publications-page placement flag.
func (a *AdminPublicationsAPI) SetPublicationsPage(ctx context.Context, id int64, placed bool) (*domain.Publication, error) {
	return a.putField(ctx, id, "publications", map[string]bool{"onPublicationsPage": placed})
}

// SetPrice updates the listing price.
func (a *AdminPublicationsAPI) SetPrice(ctx context.Context, id int64, price float64) (*domain.Publication, error) {
	return a.putField(ctx, id, "price", map[string]float64{"price": price})
}

// SetType updates the listing category.
func (a *AdminPublicationsAPI) SetType(ctx context.Context, id int64, pubType string) (*domain.Publication, error) {
	return a.putField(ctx, id, "type", map[string]string{"type": pubType})
}

// SetTitle updates the listing title.
func (a *AdminPublicationsAPI) SetTitle(ctx context.Context, id int64, title string) (*domain.Publication, error) {
	return a.putField(ctx, id, "title", map[string]string{"title": title})
}

// SetDescription updates the listing description.
func (a *AdminPublicationsAPI) SetDescription(ctx context.Context, id int64, description string) (*domain.Publication, error) {
	return a.putField(ctx, id, "description", map[string]string{"description": description})
}

// SetStatus sets the workflow status directly; the backend enforces no
// transition ordering.
func (a *AdminPublicationsAPI) SetStatus(ctx context.Context, id int64, status domain.PublicationStatus) (*domain.Publication, error) {
	return a.putField(ctx, id, "status", map[string]string{"status": string(status)})
}

func (a *AdminPublicationsAPI) putField(ctx context.Context, id int64, field string, body any) (*domain.Publication, error) {
	var out domain.Publication
	resp, err := a.c.r.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Put(fmt.Sprintf("/api/admin/publications/%d/%s", id, field))
	if cerr := a.c.check(resp, err); cerr != nil {
		return nil, cerr
	}
	return &out, nil
}
