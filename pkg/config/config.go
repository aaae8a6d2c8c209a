package config

import "os"

type Config struct {
	Port                    string
	DatabaseURL             string
	ResendKey               string
	MailFrom                string
	AdminEmail              string
	AdminAPISecret          string
	CronSecret              string
	PublicURL               string
	CorsHosts               string
	FirebaseCredentialsJSON string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		ResendKey:               getEnv("RESEND_KEY", ""),
		MailFrom:                getEnv("MAIL_FROM", "SG Ruwertal <noreply@sgruwertal.de>"),
		AdminEmail:              getEnv("ADMIN_EMAIL", ""),
		AdminAPISecret:          getEnv("ADMIN_API_SECRET", ""),
		CronSecret:              getEnv("CRON_SECRET", ""),
		PublicURL:               getEnv("PUBLIC_URL", ""),
		CorsHosts:               getEnv("CORS_HOSTS", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
