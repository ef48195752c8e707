package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Nutrient struct {
	Name              string  `json:"name"`
	Amount            float64 `json:"amount"`
	Unit              string  `json:"unit"`
	PercentDailyValue float64 `json:"percentDailyValue"`
}

// MealAnalysis is the structured nutrition payload produced by one analysis
// invocation. Every field is always populated: when the upstream model call
// fails or returns something unparsable, a fallback payload is returned with
// Fallback set so clients can tell synthetic numbers from real ones.
type MealAnalysis struct {
	MealName        string     `json:"mealName"`
	Calories        float64    `json:"calories"`
	Protein         float64    `json:"protein"`
	Carbs           float64    `json:"carbs"`
	Fat             float64    `json:"fat"`
	Fiber           float64    `json:"fiber"`
	NutritionScore  float64    `json:"nutritionScore"`
	HealthRating    string     `json:"healthRating"`
	Macronutrients  []Nutrient `json:"macronutrients"`
	Micronutrients  []Nutrient `json:"micronutrients"`
	Recommendations []string   `json:"recommendations"`
	Insights        string     `json:"insights,omitempty"`
	Fallback        bool       `json:"fallback"`
}

// ParseAnalysis decodes a model response into a MealAnalysis. The model is
// asked for bare JSON but often wraps it in markdown fences anyway, so those
// are stripped first.
func ParseAnalysis(raw string) (*MealAnalysis, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var a MealAnalysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	a.Fallback = false
	return &a, nil
}

func (a *MealAnalysis) validate() error {
	if strings.TrimSpace(a.MealName) == "" {
		return fmt.Errorf("analysis missing meal name")
	}
	if a.Calories < 0 {
		return fmt.Errorf("analysis has negative calories")
	}
	if len(a.Macronutrients) == 0 {
		return fmt.Errorf("analysis missing macronutrients")
	}
	if len(a.Recommendations) == 0 {
		return fmt.Errorf("analysis missing recommendations")
	}
	if a.NutritionScore < 0 || a.NutritionScore > 100 {
		return fmt.Errorf("nutrition score %.0f out of range", a.NutritionScore)
	}
	if a.Micronutrients == nil {
		a.Micronutrients = []Nutrient{}
	}
	return nil
}

// FallbackAnalysis is the degraded-but-valid result used whenever the vision
// model is unavailable or its output cannot be parsed. The shape matches a
// real analysis exactly; only the Fallback tag tells them apart.
func FallbackAnalysis(goal string) *MealAnalysis {
	rec := "We couldn't fully analyze this photo. These are rough estimates for a typical mixed meal; retake the photo in better lighting for a real breakdown."
	if goal != "" {
		rec = fmt.Sprintf("We couldn't fully analyze this photo, so these are rough estimates. For your %q goal, retry with a clearer photo to get a personalized breakdown.", goal)
	}
	return &MealAnalysis{
		MealName:       "Analyzed Meal",
		Calories:       500,
		Protein:        20,
		Carbs:          50,
		Fat:            20,
		Fiber:          5,
		NutritionScore: 50,
		HealthRating:   "Moderate",
		Macronutrients: []Nutrient{
			{Name: "Protein", Amount: 20, Unit: "g", PercentDailyValue: 40},
			{Name: "Carbohydrates", Amount: 50, Unit: "g", PercentDailyValue: 18},
			{Name: "Fat", Amount: 20, Unit: "g", PercentDailyValue: 26},
			{Name: "Fiber", Amount: 5, Unit: "g", PercentDailyValue: 18},
		},
		Micronutrients:  []Nutrient{},
		Recommendations: []string{rec},
		Fallback:        true,
	}
}
