package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const recentMealsLimit = 5

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type SaveMealInput struct {
	UserID   uint
	ImageURL string
	Caption  string
	Goal     string
	Analysis *MealAnalysis
}

// SaveMeal writes one immutable meal record and returns its id.
func (s *MealService) SaveMeal(in SaveMealInput) (uint, error) {
	if in.UserID == 0 {
		return 0, ErrAuthRequired
	}
	if in.ImageURL == "" {
		return 0, &ValidationError{Msg: "image_url is required"}
	}
	if in.Analysis == nil {
		return 0, &ValidationError{Msg: "analysis is required"}
	}

	caption := in.Caption
	if caption == "" {
		caption = "Meal analysis"
	}

	blob, err := json.Marshal(in.Analysis)
	if err != nil {
		return 0, &ValidationError{Msg: "analysis is not serializable"}
	}

	meal := &models.Meal{
		UserID:   in.UserID,
		Name:     in.Analysis.MealName,
		ImageURL: in.ImageURL,
		Caption:  caption,
		Goal:     in.Goal,
		Calories: in.Analysis.Calories,
		Analysis: datatypes.JSON(blob),
	}
	if err := s.db.Create(meal).Error; err != nil {
		return 0, &StorageError{Op: "insert meal", Err: err}
	}

	EmitMealEvent(in.UserID, "meal.saved", meal.ID, meal.Name)
	return meal.ID, nil
}

// DeleteMeal removes a meal owned by userID. A miss and a foreign-owned row
// both come back as ErrMealNotFound; repeat deletes do too.
func (s *MealService) DeleteMeal(userID, mealID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}

	var meal models.Meal
	err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return &StorageError{Op: "lookup meal", Err: err}
	}

	if err := s.db.Delete(&meal).Error; err != nil {
		return &StorageError{Op: "delete meal", Err: err}
	}

	EmitMealEvent(userID, "meal.deleted", mealID, meal.Name)
	return nil
}

// GetMeal returns the full record, scoped to the owner unless permissive
// reads were explicitly enabled for local development.
func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	q := s.db.Where("id = ?", mealID)
	if !config.App.PermissiveReads {
		if userID == 0 {
			return nil, ErrAuthRequired
		}
		q = q.Where("user_id = ?", userID)
	}

	var meal models.Meal
	if err := q.First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, &StorageError{Op: "lookup meal", Err: err}
	}
	return &meal, nil
}

// MealSummary is the projection used by recent-meal cards.
type MealSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Calories  float64   `json:"calories"`
	ImageURL  string    `json:"image_url"`
}

func (s *MealService) ListRecentMeals(userID uint) ([]MealSummary, error) {
	q := s.db.Model(&models.Meal{})
	if !config.App.PermissiveReads {
		if userID == 0 {
			return nil, ErrAuthRequired
		}
		q = q.Where("user_id = ?", userID)
	}

	var rows []MealSummary
	err := q.
		Select("id, name, created_at, calories, image_url").
		Order("created_at DESC").
		Limit(recentMealsLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, &StorageError{Op: "list recent meals", Err: err}
	}
	if rows == nil {
		rows = []MealSummary{}
	}
	return rows, nil
}
