// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);not null;index"`
	PhoneNumber  string     `json:"phone_number" gorm:"uniqueIndex;size:20;not null"`
	Address      string     `json:"address" gorm:"type:text"`
	Image        string     `json:"image" gorm:"size:500"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	ProfileData  JSONB      `json:"profile_data" gorm:"type:jsonb"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Listings      []Listing      `json:"listings,omitempty" gorm:"foreignKey:FarmerID"`
	Bids          []Bid          `json:"bids,omitempty" gorm:"foreignKey:DealerID"`
	Crops         []Crop         `json:"crops,omitempty" gorm:"foreignKey:FarmerID"`
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
