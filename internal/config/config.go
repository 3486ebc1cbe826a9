package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	DeepFace DeepFaceConfig
	App      AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

// DeepFaceConfig points at the external face/emotion analysis backend.
type DeepFaceConfig struct {
	URL      string
	Detector string
	Timeout  time.Duration
}

type AppConfig struct {
	TmpDir        string
	MaxUploadSize int64
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("DEEPFACE_URL", "http://localhost:5000")
	viper.SetDefault("DEEPFACE_DETECTOR", "mtcnn")
	viper.SetDefault("DEEPFACE_TIMEOUT_SECONDS", 60)
	viper.SetDefault("APP_TMP_DIR", "./tmp/uploads")
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 10*1024*1024) // 10MB

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		DeepFace: DeepFaceConfig{
			URL:      viper.GetString("DEEPFACE_URL"),
			Detector: viper.GetString("DEEPFACE_DETECTOR"),
			Timeout:  time.Duration(viper.GetInt("DEEPFACE_TIMEOUT_SECONDS")) * time.Second,
		},
		App: AppConfig{
			TmpDir:        viper.GetString("APP_TMP_DIR"),
			MaxUploadSize: viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
		},
	}

	if err := os.MkdirAll(cfg.App.TmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory %s: %w", cfg.App.TmpDir, err)
	}

	return cfg, nil
}
