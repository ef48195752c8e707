package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jatenner/Snap2Healthmain-sub005/config"
	"github.com/jatenner/Snap2Healthmain-sub005/logger"
	"github.com/jatenner/Snap2Healthmain-sub005/services"
	"github.com/jatenner/Snap2Healthmain-sub005/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyzeController struct {
	Vision   *services.VisionService
	Rek      *services.RekognitionService
	Insights services.InsightsGenerator

	httpClient *http.Client
}

func NewAnalyzeController(vision *services.VisionService, rek *services.RekognitionService, insights services.InsightsGenerator) *AnalyzeController {
	return &AnalyzeController{
		Vision:     vision,
		Rek:        rek,
		Insights:   insights,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type analyzeRequest struct {
	ImageBase64 string   `json:"image_base64"`
	ImageURL    string   `json:"image_url"`
	Goal        string   `json:"goal"`
	Ingredients []string `json:"ingredients"`
}

// AnalyzeMeal runs the full analysis pipeline for one photo: label hints,
// one vision model call, optional personalized insights. Once an image is in
// hand this endpoint always answers 200 with a schema-valid analysis; every
// upstream failure degrades to the tagged fallback payload.
func (a *AnalyzeController) AnalyzeMeal(c *gin.Context) {
	log := logger.L()

	imageData, mimeType, goal, hints, err := a.readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hints = append(hints, a.Rek.FoodLabels(c.Request.Context(), imageData)...)

	analysis := a.Vision.AnalyzeMeal(c.Request.Context(), imageData, mimeType, goal, hints)

	// Personalized insights are strictly additive: no identity, no insights;
	// generation failure, templated insights.
	if uid := c.GetUint("userID"); uid != 0 {
		profile, perr := services.GetUserProfile(uid)
		if perr != nil {
			log.Warn("profile lookup failed, using unpersonalized insights", zap.Error(perr))
			profile = nil
		}
		if goal == "" && profile != nil {
			goal = profile.Goal
		}
		insights, ierr := a.Insights.Generate(c.Request.Context(), profile, analysis, goal)
		if ierr != nil {
			log.Warn("insights generation failed, using template", zap.Error(ierr))
			insights = services.TemplateInsights(analysis, goal)
		}
		analysis.Insights = insights
	}

	c.JSON(http.StatusOK, analysis)
}

// readImage pulls image bytes from whichever form the client used: multipart
// file, base64 data URI, or a URL from a previous /upload call.
func (a *AnalyzeController) readImage(c *gin.Context) (data []byte, mimeType, goal string, hints []string, err error) {
	if fileHeader, ferr := c.FormFile("file"); ferr == nil {
		goal = c.PostForm("goal")
		mimeType = fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, "", "", nil, fmt.Errorf("file is not an image")
		}
		if fileHeader.Size > maxUploadBytes {
			return nil, "", "", nil, fmt.Errorf("file exceeds the 10MB limit")
		}
		f, oerr := fileHeader.Open()
		if oerr != nil {
			return nil, "", "", nil, fmt.Errorf("could not read uploaded file")
		}
		defer f.Close()
		data, err = io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		if err != nil || len(data) > maxUploadBytes {
			return nil, "", "", nil, fmt.Errorf("could not read uploaded file")
		}
		return data, mimeType, goal, nil, nil
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", "", nil, fmt.Errorf("no image provided")
	}
	goal = req.Goal
	hints = req.Ingredients

	switch {
	case req.ImageBase64 != "":
		data, mimeType, err = utils.DecodeImageDataURI(req.ImageBase64)
		if err != nil {
			return nil, "", "", nil, err
		}
	case req.ImageURL != "":
		data, mimeType, err = a.fetchImage(req.ImageURL)
		if err != nil {
			return nil, "", "", nil, err
		}
	default:
		return nil, "", "", nil, fmt.Errorf("no image provided")
	}

	if len(data) > maxUploadBytes {
		return nil, "", "", nil, fmt.Errorf("file exceeds the 10MB limit")
	}
	return data, mimeType, goal, hints, nil
}

func (a *AnalyzeController) fetchImage(imageURL string) ([]byte, string, error) {
	// Locally stored uploads are read straight from disk.
	if name, ok := strings.CutPrefix(imageURL, "/uploads/"); ok {
		data, err := os.ReadFile(filepath.Join(config.App.UploadDir, filepath.Base(name)))
		if err != nil {
			return nil, "", fmt.Errorf("uploaded image not found")
		}
		return data, "image/jpeg", nil
	}

	resp, err := a.httpClient.Get(imageURL)
	if err != nil {
		return nil, "", fmt.Errorf("could not fetch image url")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("could not fetch image url")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
	if err != nil || len(data) > maxUploadBytes {
		return nil, "", fmt.Errorf("could not fetch image url")
	}

	mimeType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("url does not point to an image")
	}
	return data, mimeType, nil
}
