package model

import (
	"github.com/google/uuid"
)

// UserProfile is a read-only slice of the users table. Only the archetype
// diagnosis columns are mapped here; account fields are owned by the auth
// provider.
type UserProfile struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OracleType     *string   `gorm:"type:text;column:oracle_type"`
	OracleShadow   *string   `gorm:"type:text;column:oracle_shadow"`
	OracleSolution *string   `gorm:"type:text;column:oracle_solution"`
}

func (UserProfile) TableName() string {
	return "users"
}
