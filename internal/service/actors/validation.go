package actors

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// normalizeEmail приводит email к нижнему регистру без пробелов
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeTaxID оставляет только цифры ("123.456.789-09" -> "12345678909")
func normalizeTaxID(taxID string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, taxID)
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}
	return nil
}

// validateActor проверяет поля регистрации
func validateActor(a *domain.Actor) error {
	if err := validateEmail(a.Email); err != nil {
		return err
	}
	if len(a.TaxID) != domain.TaxIDLength {
		return fmt.Errorf("%w: tax id must have %d digits", ErrInvalidInput, domain.TaxIDLength)
	}
	for _, r := range a.TaxID {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: tax id must have %d digits", ErrInvalidInput, domain.TaxIDLength)
		}
	}
	if a.FullName == "" || utf8.RuneCountInString(a.FullName) > domain.MaxFullNameLength {
		return fmt.Errorf("%w: full name is required and must be at most %d characters", ErrInvalidInput, domain.MaxFullNameLength)
	}
	if !a.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, a.Role)
	}
	return nil
}
