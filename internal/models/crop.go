// internal/models/crop.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Crop is a farmer's field record, independent of any marketplace listing.
type Crop struct {
	BaseModel
	FarmerID            uuid.UUID    `json:"farmer_id" gorm:"type:uuid;not null;index"`
	Name                string       `json:"name" gorm:"size:100;not null"`
	Description         string       `json:"description" gorm:"type:text"`
	Area                float64      `json:"area" gorm:"type:decimal(12,2);not null"`
	PlantingDate        time.Time    `json:"planting_date" gorm:"not null"`
	ExpectedHarvestDate time.Time    `json:"expected_harvest_date" gorm:"not null"`
	Status              CropStatus   `json:"status" gorm:"type:varchar(20);not null"`
	HealthStatus        HealthStatus `json:"health_status" gorm:"type:varchar(20);not null"`
	ImageURL            string       `json:"image_url" gorm:"size:500"`

	// Relationships
	Farmer User `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
}

// DiseaseReport stores one AI disease-detection result for a farmer's crop
// image, so past analyses survive the request that produced them.
type DiseaseReport struct {
	BaseModel
	FarmerID        uuid.UUID      `json:"farmer_id" gorm:"type:uuid;not null;index"`
	CropID          *uuid.UUID     `json:"crop_id" gorm:"type:uuid;index"`
	ImageURL        string         `json:"image_url" gorm:"size:500"`
	ReportedSymptoms string        `json:"reported_symptoms" gorm:"type:text"`
	DiseaseName     string         `json:"disease_name" gorm:"size:255"`
	Confidence      string         `json:"confidence" gorm:"size:10"`
	Severity        string         `json:"severity" gorm:"size:10"`
	MatchedSymptoms pq.StringArray `json:"matched_symptoms" gorm:"type:text[]"`
	Treatments      pq.StringArray `json:"treatments" gorm:"type:text[]"`
	Result          JSONB          `json:"result" gorm:"type:jsonb"`

	// Relationships
	Farmer User  `json:"farmer,omitempty" gorm:"foreignKey:FarmerID"`
	Crop   *Crop `json:"crop,omitempty" gorm:"foreignKey:CropID"`
}
