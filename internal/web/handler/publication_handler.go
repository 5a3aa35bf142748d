package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/core/ports"
	"github.com/fixer-market/fixer-web/internal/web/middleware"
)

// PublicationHandler serves the publications page and listing creation.
type PublicationHandler struct {
	catalog ports.CatalogService
}

func NewPublicationHandler(catalog ports.CatalogService) *PublicationHandler {
	return &PublicationHandler{catalog: catalog}
}

// List renders the publications page with the creation form for logged-in
// visitors.
func (h *PublicationHandler) List(c echo.Context) error {
	pubs, err := h.catalog.PublicationsPage(c.Request().Context())
	if err != nil {
		return err
	}
	return h.renderList(c, pubs, map[string]any{
		"Created": c.QueryParam("created") == "1",
	})
}

// Create submits a new listing, with or without an image. Validation
// failures re-render the page with the message and the form values kept.
func (h *PublicationHandler) Create(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	input := ports.CreatePublicationInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Type:          c.FormValue("type"),
		Price:         formFloat(c, "price"),
		UtilisateurID: sess.UserID,
	}

	upload, closeFn, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	if _, err := h.catalog.Create(c.Request().Context(), input, upload); err != nil {
		pubs, listErr := h.catalog.PublicationsPage(c.Request().Context())
		if listErr != nil {
			return listErr
		}
		return h.renderList(c, pubs, map[string]any{
			"Error": err.Error(),
			"Form":  input,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/publications?created=1")
}

func (h *PublicationHandler) renderList(c echo.Context, pubs []domain.Publication, extra map[string]any) error {
	data := map[string]any{
		"Session":      middleware.CurrentSession(c),
		"Publications": pubs,
	}
	for k, v := range extra {
		data[k] = v
	}
	return c.Render(http.StatusOK, "publications.html", data)
}

// formUpload reads an optional file field into a domain.Upload. The returned
// close function must be deferred by the caller when non-nil.
func formUpload(c echo.Context, field string) (*domain.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent file fields surface as http.ErrMissingFile.
		return nil, nil, nil
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*domain.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "fichier illisible")
	}
	upload := &domain.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return upload, func() { _ = f.Close() }, nil
}
