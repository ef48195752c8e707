package main

import (
	"context"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/controllers"
	"github.com/jatenner/Snap2Healthmain-sub005/logger"
	"github.com/jatenner/Snap2Healthmain-sub005/routes"
	"github.com/jatenner/Snap2Healthmain-sub005/services"
	"github.com/jatenner/Snap2Healthmain-sub005/utils"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	log := logger.L()
	defer log.Sync()

	config.Load()
	config.InitDB()
	utils.InitS3()
	utils.InitSES()

	// One genai client shared by vision analysis and insights. Missing key
	// means both degrade to their fallbacks rather than failing startup.
	var genaiClient *genai.Client
	if config.App.GeminiAPIKey != "" {
		var err error
		genaiClient, err = genai.NewClient(context.Background(), option.WithAPIKey(config.App.GeminiAPIKey))
		if err != nil {
			log.Fatal("Failed to create GenAI client", zap.Error(err))
		}
		defer genaiClient.Close()
	} else {
		log.Warn("GEMINI_API_KEY not set, analysis will return fallback results")
	}

	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Warn("Rekognition unavailable, continuing without label hints", zap.Error(err))
		rek = nil
	}

	hub := services.NewRealtimeHub()
	services.InitEventDeps(hub)

	ac := controllers.NewAnalyzeController(
		services.NewVisionService(genaiClient),
		rek,
		services.NewGeminiInsights(genaiClient),
	)
	mc := controllers.NewMealController(services.NewMealService(config.DB))
	rc := controllers.NewRealtimeController(hub)

	r := routes.SetupRouter(ac, mc, rc)
	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
