package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real deployments rely on env vars
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on env vars")
	}

	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "local_dev_secret"),
		Env:         getenv("APP_ENV", "dev"),

		RedisURL: os.Getenv("REDIS_URL"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getenv("CLOUDINARY_FOLDER", "carrental"),

		MailAPIURL:   os.Getenv("MAIL_API_URL"),
		MailAPIKey:   os.Getenv("MAIL_API_KEY"),
		MailFrom:     getenv("MAIL_FROM", "no-reply@carrental.local"),
		ContactInbox: os.Getenv("CONTACT_INBOX"),

		RendererURL: os.Getenv("RENDERER_URL"),
		RendererKey: os.Getenv("RENDERER_API_KEY"),

		SignatureCity: getenv("SIGNATURE_CITY", "San Salvador"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
