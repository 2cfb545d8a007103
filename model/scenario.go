package model

import (
	"time"

	"gorm.io/datatypes"
)

// Scenario is a saved simulation configuration plus its computed results,
// owned by exactly one account. Creation is append-only: names are not
// unique and rows are immutable once saved.
type Scenario struct {
	ID         string         `json:"id" gorm:"primaryKey"`
	UserID     string         `json:"user_id" gorm:"not null;index"`
	ModuleType string         `json:"module_type" gorm:"not null;index"`
	SubType    string         `json:"sub_type"`
	Name       string         `json:"name" gorm:"not null"`
	Variables  datatypes.JSON `json:"variables" gorm:"type:jsonb;not null"`
	Results    datatypes.JSON `json:"results,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`

	Account Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
