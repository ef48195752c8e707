package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FullName      string
	Goal          string // e.g. "Weight Management", "Muscle Gain"
	Age           int
	Gender        string
	Height        float64
	Weight        float64
	ActivityLevel string
	Disabled      bool
	MFAEnabled    bool
	MFACode       string
	ResetToken    string
}
