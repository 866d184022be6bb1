package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL        string
	MeiliSearchHost string
	MeiliMasterKey  string

	// Review consensus thresholds. Deployments run these anywhere from 2 to
	// 5; they are configuration, never hardcoded in the engine.
	MinApprovalCount  int
	MinRejectionCount int

	// Task assignment (bunch) limits.
	PendingApprovalLimitPerUser int
	TargetTrainingCountPerGloss int
	OneGlossRecordingLimit      int

	// The account whose uploads become gloss reference videos.
	SampleCreatorID uuid.UUID

	// Accounts whose uploads skip review entirely. Replaces the hardcoded
	// uploader bypass of the legacy system with a removable rule.
	AutoApproveUploaderIDs map[uuid.UUID]bool

	// Shown in bunches for glosses whose sample video has no thumbnail yet.
	NoThumbnailURL string

	PageSize int
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL:        os.Getenv("REDIS_URL"),
		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		NoThumbnailURL: getEnv("NO_THUMBNAIL_URL", "/static/no-pic.png"),
	}

	var err error
	if cfg.MinApprovalCount, err = getEnvInt("MIN_APPROVAL_COUNT", 3); err != nil {
		return nil, err
	}
	if cfg.MinRejectionCount, err = getEnvInt("MIN_REJECTION_COUNT", 3); err != nil {
		return nil, err
	}
	if cfg.PendingApprovalLimitPerUser, err = getEnvInt("PENDING_APPROVAL_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.TargetTrainingCountPerGloss, err = getEnvInt("TARGET_TRAINING_COUNT", 50); err != nil {
		return nil, err
	}
	if cfg.OneGlossRecordingLimit, err = getEnvInt("ONE_GLOSS_RECORDING_LIMIT", 2); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = getEnvInt("PAGE_SIZE", 20); err != nil {
		return nil, err
	}

	if raw := os.Getenv("SAMPLE_CREATOR_ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SAMPLE_CREATOR_ID: %w", err)
		}
		cfg.SampleCreatorID = id
	}

	cfg.AutoApproveUploaderIDs = map[uuid.UUID]bool{}
	for _, raw := range strings.Split(os.Getenv("AUTO_APPROVE_UPLOADER_IDS"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTO_APPROVE_UPLOADER_IDS entry %q: %w", raw, err)
		}
		cfg.AutoApproveUploaderIDs[id] = true
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
