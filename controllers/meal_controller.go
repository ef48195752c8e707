package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jatenner/Snap2Healthmain-sub005/logger"
	"github.com/jatenner/Snap2Healthmain-sub005/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

type saveMealRequest struct {
	ImageURL string                 `json:"image_url"`
	Caption  string                 `json:"caption"`
	Goal     string                 `json:"goal"`
	Analysis *services.MealAnalysis `json:"analysis"`
}

func (m *MealController) SaveMeal(c *gin.Context) {
	var req saveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	mealID, err := m.Meals.SaveMeal(services.SaveMealInput{
		UserID:   c.GetUint("userID"),
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
		Goal:     req.Goal,
		Analysis: req.Analysis,
	})
	if err != nil {
		m.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"mealId": mealID})
}

func (m *MealController) DeleteMeal(c *gin.Context) {
	idParam := c.Query("id")
	if idParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal id is required"})
		return
	}
	mealID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := m.Meals.DeleteMeal(c.GetUint("userID"), uint(mealID)); err != nil {
		m.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (m *MealController) RecentMeals(c *gin.Context) {
	meals, err := m.Meals.ListRecentMeals(c.GetUint("userID"))
	if err != nil {
		m.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (m *MealController) GetMeal(c *gin.Context) {
	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := m.Meals.GetMeal(c.GetUint("userID"), uint(mealID))
	if err != nil {
		m.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (m *MealController) renderError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in"})
	case errors.Is(err, services.ErrMealNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Msg})
	default:
		logger.L().Error("meal operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred"})
	}
}
