package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConsultRequest struct {
	Message   string     `json:"message" validate:"required"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}

type ConsultResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Response  string    `json:"response"`
	DejaVu    bool      `json:"deja_vu"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetSessionHistoryResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
