package services

import (
	"errors"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/models"

	"gorm.io/gorm"
)

var profiles = newProfileCache()

type Profile struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Goal          string  `json:"goal"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	ActivityLevel string  `json:"activity_level"`
}

type ProfileInput struct {
	FullName      string  `json:"full_name"`
	Goal          string  `json:"goal"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	ActivityLevel string  `json:"activity_level"`
}

// GetUserProfile reads through the advisory cache; the database stays the
// source of truth.
func GetUserProfile(userID uint) (*Profile, error) {
	if p, ok := profiles.get(userID); ok {
		return p, nil
	}

	var user models.User
	err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found or disabled")
		}
		return nil, err
	}

	p := &Profile{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Goal:          user.Goal,
		Age:           user.Age,
		Gender:        user.Gender,
		Height:        user.Height,
		Weight:        user.Weight,
		ActivityLevel: user.ActivityLevel,
	}
	profiles.put(userID, p)
	return p, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error
	if err != nil {
		return errors.New("user not found or disabled")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Goal != "" {
		user.Goal = input.Goal
	}
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Height > 0 {
		user.Height = input.Height
	}
	if input.Weight > 0 {
		user.Weight = input.Weight
	}
	if input.ActivityLevel != "" {
		user.ActivityLevel = input.ActivityLevel
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}
	profiles.invalidate(userID)
	return nil
}
