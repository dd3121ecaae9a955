package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Tier         string     `gorm:"type:varchar(50);not null;default:'FREE'"`
	ProExpiresAt *time.Time `gorm:""`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
