package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jatenner/Snap2Healthmain-sub005/logger"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

const (
	visionModelName = "gemini-1.5-flash-latest"

	// Hard ceiling on one analysis call. On expiry the request falls back to
	// a synthetic analysis instead of hanging.
	visionCallTimeout = 30 * time.Second

	visionSystemInstruction = "You are a professional nutritionist analyzing a photo of a meal. " +
		"Identify the meal and estimate its nutrition from the photo alone. " +
		"Respond with a single JSON object and nothing else, using this shape: " +
		`{"mealName": string, "calories": number, "protein": number, "carbs": number, "fat": number, "fiber": number, ` +
		`"nutritionScore": number (0-100), "healthRating": string, ` +
		`"macronutrients": [{"name": string, "amount": number, "unit": string, "percentDailyValue": number}] (exactly Protein, Carbohydrates, Fat, Fiber), ` +
		`"micronutrients": [{"name": string, "amount": number, "unit": string, "percentDailyValue": number}], ` +
		`"recommendations": [string]}. ` +
		"Amounts are grams unless another unit is standard. Do not refuse; give your best estimate."
)

// VisionService runs one multimodal completion per submitted photo and parses
// the result into a MealAnalysis. It is total: every call returns a
// schema-valid analysis, real or fallback, never an error.
type VisionService struct {
	client *genai.Client
}

// NewVisionService accepts a nil client (no API key configured); the service
// then serves fallback analyses only.
func NewVisionService(client *genai.Client) *VisionService {
	return &VisionService{client: client}
}

func (s *VisionService) AnalyzeMeal(ctx context.Context, imageData []byte, mimeType, goal string, hints []string) *MealAnalysis {
	log := logger.L()

	if s.client == nil {
		log.Warn("vision model not configured, returning fallback analysis")
		return FallbackAnalysis(goal)
	}

	ctx, cancel := context.WithTimeout(ctx, visionCallTimeout)
	defer cancel()

	model := s.client.GenerativeModel(visionModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(visionSystemInstruction)},
	}

	temp := float32(0.2)
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temp,
	}

	prompt := "Analyze the meal in this photo."
	if goal != "" {
		prompt += fmt.Sprintf(" The user's goal is %q; tailor the recommendations to it.", goal)
	}
	if len(hints) > 0 {
		prompt += fmt.Sprintf(" Detected items that may appear in the photo: %s.", strings.Join(hints, ", "))
	}

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat(mimeType), imageData),
		genai.Text(prompt),
	)
	if err != nil {
		log.Warn("vision model call failed, returning fallback analysis", zap.Error(err))
		return FallbackAnalysis(goal)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn("vision model returned no candidates, returning fallback analysis")
		return FallbackAnalysis(goal)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	analysis, err := ParseAnalysis(sb.String())
	if err != nil {
		log.Warn("vision model response unparsable, returning fallback analysis", zap.Error(err))
		return FallbackAnalysis(goal)
	}
	return analysis
}

// imageFormat maps "image/jpeg" → "jpeg" etc., the subtype genai expects.
func imageFormat(mimeType string) string {
	if idx := strings.Index(mimeType, "/"); idx >= 0 {
		return mimeType[idx+1:]
	}
	return "jpeg"
}
