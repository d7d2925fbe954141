// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleFarmer UserRole = "FARMER"
	UserRoleDealer UserRole = "DEALER"
	UserRoleAdmin  UserRole = "ADMIN"
)

// ValidRegistrationRole reports whether a role may be chosen at signup.
// Admin accounts are seeded, never self-registered.
func ValidRegistrationRole(r UserRole) bool {
	return r == UserRoleFarmer || r == UserRoleDealer
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "ACTIVE"
	ListingStatusSold    ListingStatus = "SOLD"
	ListingStatusExpired ListingStatus = "EXPIRED"
	ListingStatusRemoved ListingStatus = "REMOVED"
)

type NotificationType string

const (
	NotificationTypeWin NotificationType = "WIN"
)

type CropStatus string

const (
	CropStatusPlanned   CropStatus = "planned"
	CropStatusGrowing   CropStatus = "growing"
	CropStatusHarvested CropStatus = "harvested"
)

type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "healthy"
	HealthStatusAtRisk   HealthStatus = "at_risk"
	HealthStatusDiseased HealthStatus = "diseased"
)
