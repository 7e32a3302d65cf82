package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)


type Config struct {
	Env string
	Port int
	DBURL string

	JWTSecret string
	TokenTTLMinutes int

	AllowedOrigins []string

	AdminName string
	AdminEmail string
	AdminPassword string
	AdminRole string

	OTLPEndpoint string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT",5000)
	dbURL := buildDBURL()

	return Config{
		Env: env,
		Port: port,
		DBURL: dbURL,

		JWTSecret: getEnv("JWT_SECRET_KEY", "jwt-secret-key-change-in-production"),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),

		// fixed local dev origins for the tracker frontend
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},

		AdminName: getEnv("ADMIN_NAME", "Admin User"),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminRole: getEnv("ADMIN_ROLE", "admin"),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST","127.0.0.1")
	port := getEnv("DB_PORT","5432")
	user := getEnv("DB_USER","placementtrack")
	pass := getEnv("DB_PASSWORD","placementtrack")
	name := getEnv("DB_NAME", "placementtrack")
	ssl := getEnv("DB_SSLMODE", "disable")


	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration)(context.Context, context.CancelFunc){
	return context.WithTimeout(context.Background(),duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
		}

		return num
	}
	return fallback
}
