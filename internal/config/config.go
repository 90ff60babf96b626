package config

import (
	"echoscore/pkg/logger"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTP struct {
		Addr            string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
		MaxUploadBytes  int64  `yaml:"max_upload_bytes" env:"HTTP_MAX_UPLOAD_BYTES" env-default:"10485760"`
		RatePerMinute   int    `yaml:"rate_per_minute" env:"HTTP_RATE_PER_MINUTE" env-default:"120"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	} `yaml:"http"`

	S3 struct {
		Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT"`
		Region        string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
		AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
		SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
		Bucket        string `yaml:"bucket" env:"S3_BUCKET"`
		PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	} `yaml:"s3"`

	Speech struct {
		LanguageCode    string `yaml:"language_code" env:"SPEECH_LANGUAGE_CODE" env-default:"en-US"`
		CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	} `yaml:"speech"`
}

// LoadConfig reads configs/config.yaml with environment overrides. The .env
// file is loaded once by the entrypoint before this runs.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig("configs/config.yaml", &cfg); err != nil {
		return nil, err
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		return nil, err
	}

	logger.Info("Config loaded successfully")
	return &cfg, nil
}
