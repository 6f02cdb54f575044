package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// GitHub collaborator
	GitHubAPIURL     string
	GitHubGraphQLURL string
	GitHubToken      string

	// Competitive judge collaborator
	JudgeAPIURL string
	JudgeAPIKey string

	// Resume processing collaborators
	OCRServiceURL     string
	AnalyzeServiceURL string
	AnalyzeAPIKey     string

	// How long cached platform snapshots stay fresh
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "algomate"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		GitHubAPIURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
		GitHubGraphQLURL: getEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
		GitHubToken:      getEnv("GITHUB_TOKEN", ""),

		JudgeAPIURL: getEnv("JUDGE_API_URL", "https://codeforces.com/api"),
		JudgeAPIKey: getEnv("JUDGE_API_KEY", ""),

		OCRServiceURL:     getEnv("OCR_SERVICE_URL", ""),
		AnalyzeServiceURL: getEnv("ANALYZE_SERVICE_URL", ""),
		AnalyzeAPIKey:     getEnv("ANALYZE_API_KEY", ""),

		CacheTTL: getEnvDuration("CACHE_TTL", 2*time.Hour),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}
