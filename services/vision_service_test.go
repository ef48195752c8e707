package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With no model configured the service must still return a complete analysis.
func TestAnalyzeMealWithoutClientFallsBack(t *testing.T) {
	svc := NewVisionService(nil)

	a := svc.AnalyzeMeal(context.Background(), []byte("img"), "image/jpeg", "Muscle Gain", nil)
	require.NotNil(t, a)
	assert.True(t, a.Fallback)
	assert.NoError(t, a.validate())
}

func TestImageFormat(t *testing.T) {
	assert.Equal(t, "jpeg", imageFormat("image/jpeg"))
	assert.Equal(t, "png", imageFormat("image/png"))
	assert.Equal(t, "jpeg", imageFormat("garbage"))
}
