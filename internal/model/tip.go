package model

import (
	"time"

	"gorm.io/gorm"
)

// Category is the closed set of wellness categories a tip belongs to.
type Category string

const (
	CategorySleep     Category = "SLEEP"
	CategoryNutrition Category = "NUTRITION"
	CategoryMovement  Category = "MOVEMENT"
	CategoryStress    Category = "STRESS"
)

// Categories lists all valid categories.
var Categories = []Category{CategorySleep, CategoryNutrition, CategoryMovement, CategoryStress}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Tip is a single piece of advice. Seed tips have no creator.
type Tip struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Category    Category       `json:"category" gorm:"type:varchar(20);not null;index"`
	Title       string         `json:"title" gorm:"type:varchar(100);not null"`
	Description string         `json:"description" gorm:"type:varchar(500);not null"`
	CreatedByID *uint          `json:"created_by_id,omitempty" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
