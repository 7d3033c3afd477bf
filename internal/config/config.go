package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	JWTSecret      string
	OpeningBalance int64 // credits granted to newly registered principals
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tradepost.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./tradepost.log" // default log sink in project root
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret" // override in any real deployment
	}
	opening := int64(1000)
	if v := os.Getenv("OPENING_BALANCE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			opening = n
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, JWTSecret: secret, OpeningBalance: opening}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s OPENING_BALANCE=%d", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.OpeningBalance)
	return cfg
}
