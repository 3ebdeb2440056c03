// Package config loads application configuration from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultModel   = "gemini-1.5-pro"
	DefaultOrgName = "Lekdetectie Services"
	defaultDirName = ".bamab"
)

// Config holds all configuration for the application.
type Config struct {
	// GeminiAPIKey authenticates against the Gemini API. Required for the
	// generate command; everything else works without it.
	GeminiAPIKey string

	// GeminiModel is the text/vision model used for report generation.
	GeminiModel string

	// BaseDir is where the report history database lives.
	BaseDir string

	// OrgName is the issuing-organization line on rendered documents.
	OrgName string
}

// Load reads configuration from environment variables, applying defaults.
// A .env file in the working directory is loaded first if present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseDir := os.Getenv("BAMAB_DIR")
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(home, defaultDirName)
	}

	return &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", DefaultModel),
		BaseDir:      baseDir,
		OrgName:      getEnv("BAMAB_ORG", DefaultOrgName),
	}, nil
}

// getEnv returns the value of the environment variable or a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
