package sweet

import (
	"regexp"
	"strings"

	"sweetshop/internal/domain"
	apperror "sweetshop/internal/errors"
)

var (
	// Cadastro: letras, espaços e - ' &
	draftNamePattern     = regexp.MustCompile(`^[\p{L} \-'&]{3,50}$`)
	draftCategoryPattern = regexp.MustCompile(`^[\p{L} \-'&]{2,50}$`)

	// Atualização: nome só com letras e espaços; categoria sem dígitos.
	updateNamePattern     = regexp.MustCompile(`^[\p{L} ]{2,50}$`)
	updateCategoryPattern = regexp.MustCompile(`^[^0-9]{2,30}$`)
)

const minUpdatePrice = 0.01

// ValidateDraft aplica as regras do payload de cadastro.
func ValidateDraft(d domain.SweetDraft) error {
	if strings.TrimSpace(d.Name) == "" || !draftNamePattern.MatchString(d.Name) {
		return apperror.NewValidationError("O nome deve ter de 3 a 50 caracteres e conter apenas letras, espaços, hífen, apóstrofo ou &.")
	}
	if strings.TrimSpace(d.Category) == "" || !draftCategoryPattern.MatchString(d.Category) {
		return apperror.NewValidationError("A categoria deve ter de 2 a 50 caracteres e conter apenas letras, espaços, hífen, apóstrofo ou &.")
	}
	if d.Price <= 0 {
		return apperror.NewValidationError("O preço deve ser maior que zero.")
	}
	if d.Quantity < 1 {
		return apperror.NewValidationError("A quantidade deve ser no mínimo 1.")
	}
	return nil
}

// ValidateUpdate aplica as regras aos campos presentes na atualização parcial.
func ValidateUpdate(u *domain.SweetUpdate) error {
	if u == nil {
		return nil
	}
	if u.Name != nil && (strings.TrimSpace(*u.Name) == "" || !updateNamePattern.MatchString(*u.Name)) {
		return apperror.NewValidationError("O nome deve ter de 2 a 50 caracteres e conter apenas letras e espaços.")
	}
	if u.Category != nil && (strings.TrimSpace(*u.Category) == "" || !updateCategoryPattern.MatchString(*u.Category)) {
		return apperror.NewValidationError("A categoria deve ter de 2 a 30 caracteres e não pode conter números.")
	}
	if u.Price != nil && *u.Price < minUpdatePrice {
		return apperror.NewValidationError("O preço deve ser no mínimo 0.01.")
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return apperror.NewValidationError("A quantidade não pode ser negativa.")
	}
	return nil
}
