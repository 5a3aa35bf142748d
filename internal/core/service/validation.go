package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// humanize converts a go-playground validation failure into the single
// French message the page renders inline. Only the first failing field is
// reported, matching the one-banner-per-form UI.
func humanize(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return errors.New(fieldMessage(ve[0]))
	}
	return err
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("le champ %s est requis", field)
	case "email":
		return "adresse e-mail invalide"
	case "gt":
		return fmt.Sprintf("le champ %s doit être supérieur à %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("le champ %s doit contenir au moins %s caractères", field, fe.Param())
	case "len":
		return fmt.Sprintf("le champ %s doit contenir exactement %s caractères", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("le champ %s ne doit contenir que des chiffres", field)
	case "oneof":
		return fmt.Sprintf("le champ %s doit être l'une des valeurs : %s", field, fe.Param())
	default:
		return fmt.Sprintf("le champ %s est invalide (%s)", field, fe.Tag())
	}
}
