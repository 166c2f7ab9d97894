package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// RegisterRequest запрос на регистрацию пользователя
type RegisterRequest struct {
	Email    string `json:"email"`
	TaxID    string `json:"taxId"` // 11 цифр, допускаются точки и дефис
	FullName string `json:"fullName"`
	Role     string `json:"role"` // manager | organizer
}

// CheckEmailRequest проверка занятости email
type CheckEmailRequest struct {
	Email string `json:"email"`
}

// CheckEmailResponse результат проверки email
type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

// ActorResponse ответ с данными пользователя
type ActorResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	TaxID     string    `json:"taxId"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainActor конвертирует domain.Actor в ответ
func FromDomainActor(a *domain.Actor) *ActorResponse {
	return &ActorResponse{
		ID:        a.ID,
		Email:     a.Email,
		TaxID:     a.TaxID,
		FullName:  a.FullName,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}
