// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GOOGLE_PLACES_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, ignored if not present
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env in the likely run directories before giving up and
// relying on the process environment.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig backfills secrets from well-known env names when the
// yaml left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Google.Speech.APIKey == "" {
		if val := os.Getenv("GOOGLE_SPEECH_API_KEY"); val != "" {
			cfg.Google.Speech.APIKey = val
		}
	}
	if cfg.Google.Places.APIKey == "" {
		if val := os.Getenv("GOOGLE_PLACES_API_KEY"); val != "" {
			cfg.Google.Places.APIKey = val
		}
	}
	if cfg.AWS.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.AWS.Region = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.DebugPort == 0 {
		cfg.Server.DebugPort = 6060
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}

	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "ap-northeast-2"
	}
	if cfg.AWS.Bedrock.ModelID == "" {
		cfg.AWS.Bedrock.ModelID = "amazon.titan-text-express-v1"
	}
	if cfg.AWS.Bedrock.MaxTokens == 0 {
		cfg.AWS.Bedrock.MaxTokens = 1024
	}
	if cfg.AWS.Bedrock.Temperature == 0 {
		cfg.AWS.Bedrock.Temperature = 0.7
	}
	if cfg.AWS.Bedrock.TopP == 0 {
		cfg.AWS.Bedrock.TopP = 0.9
	}

	if cfg.Google.Speech.BaseURL == "" {
		cfg.Google.Speech.BaseURL = "https://speech.googleapis.com/v1"
	}
	if cfg.Google.Speech.LanguageCode == "" {
		cfg.Google.Speech.LanguageCode = "ko-KR"
	}
	if cfg.Google.Speech.Encoding == "" {
		cfg.Google.Speech.Encoding = "LINEAR16"
	}
	if cfg.Google.Speech.SampleRateHertz == 0 {
		cfg.Google.Speech.SampleRateHertz = 16000
	}
	if cfg.Google.Speech.Timeout == 0 {
		cfg.Google.Speech.Timeout = 15000
	}

	if cfg.Google.Places.BaseURL == "" {
		cfg.Google.Places.BaseURL = "https://maps.googleapis.com/maps/api/place"
	}
	if cfg.Google.Places.RadiusMeters == 0 {
		cfg.Google.Places.RadiusMeters = 5000
	}
	if cfg.Google.Places.Timeout == 0 {
		cfg.Google.Places.Timeout = 10000
	}

	if cfg.TTS.VoiceID == "" {
		cfg.TTS.VoiceID = "Seoyeon"
	}
	if cfg.TTS.OutputFormat == "" {
		cfg.TTS.OutputFormat = "mp3"
	}
	if cfg.TTS.Engine == "" {
		cfg.TTS.Engine = "neural"
	}
	if cfg.TTS.LanguageCode == "" {
		cfg.TTS.LanguageCode = "ko-KR"
	}
	if cfg.TTS.SyllablesPerSecond == 0 {
		cfg.TTS.SyllablesPerSecond = 3
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}

	if cfg.AWS.Region == "" {
		return fmt.Errorf("aws.region is required")
	}
	if cfg.AWS.Bedrock.ModelID == "" {
		return fmt.Errorf("aws.bedrock.model_id is required")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
