package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Meal is one photo-analysis-save cycle. Rows are created once and only ever
// soft-deleted; there is no update path.
type Meal struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"` // FK → users.id
	Name     string // meal name from the analysis, denormalized for list views
	ImageURL string `gorm:"not null"`
	Caption  string
	Goal     string
	Calories float64        // denormalized from the analysis for summaries
	Analysis datatypes.JSON // full MealAnalysis payload, stored opaque
}
