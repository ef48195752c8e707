package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jatenner/Snap2Healthmain-sub005/models"
	"github.com/jatenner/Snap2Healthmain-sub005/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMealRouter wires the meal endpoints against an in-memory store, with the
// acting user pinned per request by an X-Test-User header.
func newMealRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Meal{}))

	mc := NewMealController(services.NewMealService(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			var uid uint
			fmt.Sscanf(v, "%d", &uid)
			c.Set("userID", uid)
		}
	})
	r.POST("/save-meal", mc.SaveMeal)
	r.DELETE("/meal", mc.DeleteMeal)
	r.GET("/meals/recent", mc.RecentMeals)
	r.GET("/meal/:id", mc.GetMeal)
	return r, db
}

func doJSON(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func saveMealBody(imageURL string) string {
	analysis, _ := json.Marshal(services.FallbackAnalysis("Muscle Gain"))
	return fmt.Sprintf(`{"image_url": %q, "caption": "lunch", "goal": "Muscle Gain", "analysis": %s}`,
		imageURL, analysis)
}

func TestSaveMealEndpoint(t *testing.T) {
	r, _ := newMealRouter(t)

	w := doJSON(r, http.MethodPost, "/save-meal", "1", saveMealBody("/uploads/a.jpg"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		MealID uint `json:"mealId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.MealID)
}

func TestSaveMealEndpointRequiresAuth(t *testing.T) {
	r, db := newMealRouter(t)

	w := doJSON(r, http.MethodPost, "/save-meal", "", saveMealBody("/uploads/a.jpg"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.Meal{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestSaveMealEndpointValidatesFields(t *testing.T) {
	r, _ := newMealRouter(t)

	w := doJSON(r, http.MethodPost, "/save-meal", "1", `{"caption": "lunch"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMealEndpoint(t *testing.T) {
	r, _ := newMealRouter(t)

	w := doJSON(r, http.MethodPost, "/save-meal", "1", saveMealBody("/uploads/a.jpg"))
	require.Equal(t, http.StatusOK, w.Code)
	var saved struct {
		MealID uint `json:"mealId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	// no id
	w = doJSON(r, http.MethodDelete, "/meal", "1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// not the owner → 404, identical to a miss
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/meal?id=%d", saved.MealID), "2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// owner
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/meal?id=%d", saved.MealID), "1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	// repeat delete
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/meal?id=%d", saved.MealID), "1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMealEndpoint(t *testing.T) {
	r, _ := newMealRouter(t)

	w := doJSON(r, http.MethodPost, "/save-meal", "1", saveMealBody("/uploads/photo.jpg"))
	require.Equal(t, http.StatusOK, w.Code)
	var saved struct {
		MealID uint `json:"mealId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/meal/%d", saved.MealID), "1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var meal models.Meal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meal))
	assert.Equal(t, "/uploads/photo.jpg", meal.ImageURL)
	assert.Equal(t, "lunch", meal.Caption)

	// foreign reader sees not-found
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/meal/%d", saved.MealID), "2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// nonexistent id
	w = doJSON(r, http.MethodGet, "/meal/99999", "1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentMealsEndpoint(t *testing.T) {
	r, _ := newMealRouter(t)

	for i := 0; i < 7; i++ {
		w := doJSON(r, http.MethodPost, "/save-meal", "1", saveMealBody(fmt.Sprintf("/uploads/m%d.jpg", i)))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/meals/recent", "1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []services.MealSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 5)
}
