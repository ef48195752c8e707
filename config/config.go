package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jatenner/Snap2Healthmain-sub005/logger"
	"github.com/jatenner/Snap2Healthmain-sub005/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AuthPolicy values. Resolved once at startup; request handling never reads
// auth-related environment variables directly.
const (
	AuthPolicyStrict = "strict"
	AuthPolicyBypass = "bypass"
)

type Config struct {
	Port         string
	JWTSecret    string
	GeminiAPIKey string

	AWSRegion     string
	S3Bucket      string
	CloudFrontURL string
	SESEmail      string

	// UploadDir backs local image storage when no S3 bucket is configured.
	UploadDir string

	AuthPolicy   string
	BypassUserID uint

	// PermissiveReads disables user scoping on meal reads. Development only.
	PermissiveReads bool
}

var (
	DB  *gorm.DB
	App Config
)

func Load() {
	log := logger.L()
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	App = Config{
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		CloudFrontURL:   getEnv("CLOUDFRONT_URL", ""),
		SESEmail:        getEnv("SES_EMAIL", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "public/uploads"),
		AuthPolicy:      getEnv("AUTH_POLICY", AuthPolicyStrict),
		BypassUserID:    uint(getEnvAsInt("BYPASS_USER_ID", 1)),
		PermissiveReads: getEnv("PERMISSIVE_READS", "") == "true",
	}

	if App.AuthPolicy != AuthPolicyStrict && App.AuthPolicy != AuthPolicyBypass {
		log.Fatal("AUTH_POLICY must be \"strict\" or \"bypass\"", zap.String("value", App.AuthPolicy))
	}
	if App.AuthPolicy == AuthPolicyStrict && App.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required when AUTH_POLICY=strict")
	}
	if App.AuthPolicy == AuthPolicyBypass {
		log.Warn("auth bypass enabled, all requests act as the bypass identity",
			zap.Uint("bypass_user_id", App.BypassUserID))
	}
	if App.PermissiveReads {
		log.Warn("permissive reads enabled, meal reads are not scoped by user")
	}
}

func InitDB() {
	log := logger.L()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Meal{},
	); err != nil {
		log.Fatal("AutoMigrate failed", zap.Error(err))
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
