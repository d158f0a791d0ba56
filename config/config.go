package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port         string
	Env          string
	RedisURL     string
	MongoURI     string
	MongoDB      string
	KafkaBrokers []string
	KafkaTopic   string

	// TaxRate is the externally supplied sales-tax rate applied to the
	// post-discount subtotal, e.g. 0.07 for 7%.
	TaxRate decimal.Decimal

	// PaymentMethods is the allow-list checked before checkout.
	PaymentMethods []string

	// Keyboard-wedge decoder defaults; terminals may override them live
	// through the settings endpoint.
	ScanMinLength       int
	ScanSuffixKey       string
	ScanInterKeyTimeout time.Duration
	ScanEnabled         bool
}

func Load() Config {
	// Missing .env is fine in containers; env vars win either way.
	_ = godotenv.Load()

	return Config{
		Port:         getEnv("PORT", "8087"),
		Env:          getEnv("APP_ENV", "development"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "primepos"),
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "checkout.requested"),

		TaxRate:        getEnvDecimal("TAX_RATE", "0"),
		PaymentMethods: strings.Split(getEnv("PAYMENT_METHODS", "cash,card"), ","),

		ScanMinLength:       getEnvInt("SCAN_MIN_LENGTH", 3),
		ScanSuffixKey:       getEnv("SCAN_SUFFIX_KEY", "Enter"),
		ScanInterKeyTimeout: time.Duration(getEnvInt("SCAN_INTERKEY_TIMEOUT_MS", 60)) * time.Millisecond,
		ScanEnabled:         getEnv("SCAN_ENABLED", "true") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvDecimal(key, defaultVal string) decimal.Decimal {
	val := os.Getenv(key)
	if val == "" {
		val = defaultVal
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, val, defaultVal)
		d, _ = decimal.NewFromString(defaultVal)
	}
	return d
}
