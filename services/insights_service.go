package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const insightsModelName = "gemini-1.5-flash-latest"

const insightsSystemInstruction = "You are a nutritionist writing a short personalized consultation for one meal. " +
	"Cover how the meal fits the user's goal, its likely energy timeline, and one or two concrete improvements. " +
	"Three short paragraphs of plain text, no markdown headings."

// InsightsGenerator produces free-text personalized insight for an analyzed
// meal. Implementations may call out to a model; callers must treat failures
// as non-fatal and degrade to TemplateInsights.
type InsightsGenerator interface {
	Generate(ctx context.Context, profile *Profile, analysis *MealAnalysis, goal string) (string, error)
}

// GeminiInsights generates insight text with a text-only completion against
// the same client the vision service uses.
type GeminiInsights struct {
	client *genai.Client
}

func NewGeminiInsights(client *genai.Client) *GeminiInsights {
	return &GeminiInsights{client: client}
}

func (g *GeminiInsights) Generate(ctx context.Context, profile *Profile, analysis *MealAnalysis, goal string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("insights model not configured")
	}

	model := g.client.GenerativeModel(insightsModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(insightsSystemInstruction)},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Meal: %s, %.0f kcal (protein %.0fg, carbs %.0fg, fat %.0fg, fiber %.0fg).\n",
		analysis.MealName, analysis.Calories, analysis.Protein, analysis.Carbs, analysis.Fat, analysis.Fiber)
	if goal == "" && profile != nil {
		goal = profile.Goal
	}
	if goal != "" {
		fmt.Fprintf(&sb, "Goal: %s.\n", goal)
	}
	if profile != nil {
		fmt.Fprintf(&sb, "User: age %d, gender %s, weight %.0f, height %.0f, activity level %s.\n",
			profile.Age, profile.Gender, profile.Weight, profile.Height, profile.ActivityLevel)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("insights generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("insights generation returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			out.WriteString(string(txt))
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("insights generation returned no text")
	}
	return strings.TrimSpace(out.String()), nil
}

// TemplateInsights is the canned degradation when insight generation fails.
func TemplateInsights(analysis *MealAnalysis, goal string) string {
	if goal == "" {
		goal = "general health"
	}
	return fmt.Sprintf(
		"This meal provides %.0f calories with %.0fg protein, %.0fg carbohydrates and %.0fg fat. "+
			"Expect steady energy for roughly three to four hours after eating. "+
			"Pair it with adequate hydration and keep portions consistent to support your %s goal.",
		analysis.Calories, analysis.Protein, analysis.Carbs, analysis.Fat, goal)
}
