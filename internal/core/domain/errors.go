package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Transport-level failures, classified per the error taxonomy of the UI:
// no response at all, a response that took too long, or a 401 that must
// tear the session down globally instead of rendering inline.
var (
	ErrUnauthorized       = errors.New("session expirée")
	ErrBackendUnreachable = errors.New("serveur injoignable")
	ErrBackendTimeout     = errors.New("délai d'attente dépassé")
	ErrNotFound           = errors.New("ressource introuvable")
)

// Client-side validation failures. These are raised before any request is
// sent and rendered as inline field-level messages.
var (
	ErrInvalidEmail   = errors.New("adresse e-mail invalide")
	ErrMissingUser    = errors.New("utilisateur non connecté")
	ErrEmptyMessage   = errors.New("le message ne peut pas être vide")
	ErrFileTooLarge   = errors.New("le fichier dépasse la taille maximale autorisée")
	ErrNotParticipant = errors.New("vous ne participez pas à cette conversation")
	ErrInvalidRating  = errors.New("la note doit être comprise entre 0 et 10")
	ErrNoAdminFound   = errors.New("aucun administrateur trouvé")
	ErrInvalidStatus  = errors.New("statut de publication inconnu")
)

// APIError is an HTTP error response with a structured body. Its message is
// surfaced verbatim to the user, per the backend's error contract.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("erreur %d", e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match a 404 response without losing
// the backend's message.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
