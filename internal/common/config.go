package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR  OCRConfig
	LLM  LLMConfig
	Form FormConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftoppm    string
	Tesseract   string
	Languages   string
	Scale       int
	MaxPages    int
	TessdataDir string
}

// LLMConfig holds model-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// FormConfig holds rendering-related configuration
type FormConfig struct {
	NicholasLogoPath string
	MSLogoPath       string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Languages:   getEnv("OCR_LANGUAGES", ""),
			Scale:       getEnvAsInt("OCR_SCALE", 3),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		LLM: LLMConfig{
			Model:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Form: FormConfig{
			NicholasLogoPath: getEnv("NICHOLAS_LOGO_PATH", ""),
			MSLogoPath:       getEnv("MS_LOGO_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration. The model key is the only
// hard requirement; everything else has workable defaults.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	return nil
}
