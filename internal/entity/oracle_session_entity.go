package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one immutable entry of a session's message log.
// Ordering inside OracleSession.Messages is authoritative for replay.
type ChatMessage struct {
	Role      string
	Content   string
	Timestamp time.Time
}

type OracleSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Messages  []ChatMessage
	Archived  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
