package utils

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort  string `yaml:"APP_PORT"`
	AppURL   string `yaml:"APP_URL"`
	LogLevel string `yaml:"LOG_LEVEL"`
	LogFile  string `yaml:"LOG_FILE"`
	Timezone string `yaml:"TIMEZONE"`

	// Storage configuration
	StorageBackend string `yaml:"STORAGE_BACKEND"`
	DBUser         string `yaml:"DB_USER"`
	DBName         string `yaml:"DB_NAME"`
	DBPassword     string `yaml:"DB_PASSWORD"`
	DBPort         string `yaml:"DB_PORT"`
	DBHost         string `yaml:"DB_HOST"`

	// Automatic consumption
	MarkerBackend           string `yaml:"MARKER_BACKEND"`
	MarkerPath              string `yaml:"MARKER_PATH"`
	AutoConsumptionEnabled  bool   `yaml:"AUTO_CONSUMPTION_ENABLED"`
	AutoConsumptionInterval string `yaml:"AUTO_CONSUMPTION_INTERVAL"`
	AutoConsumptionPolicy   string `yaml:"AUTO_CONSUMPTION_POLICY"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	MailTo           string `yaml:"MAIL_TO"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
	configPath = "config.yaml"
)

func defaults() Config {
	return Config{
		AppPort:                 "8080",
		LogLevel:                "info",
		LogFile:                 "./logs/app.log",
		Timezone:                "Local",
		StorageBackend:          "memory",
		DBPort:                  "5432",
		MarkerBackend:           "memory",
		MarkerPath:              "./data/markers.db",
		AutoConsumptionEnabled:  true,
		AutoConsumptionInterval: "1h",
		AutoConsumptionPolicy:   "head_only",
		SMTPPort:                "587",
	}
}

// LoadConfig reads .env, then config.yaml, then lets environment variables
// override individual keys. It is safe to call more than once.
func LoadConfig() {
	configOnce.Do(func() {
		config = readConfig(configPath)
	})
}

// SetConfigPath points LoadConfig at a different YAML file. Call it before
// the first LoadConfig.
func SetConfigPath(path string) {
	configPath = path
}

func readConfig(path string) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	cfg := defaults()
	file, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading YAML file: %s\n", err)
		}
	} else if err := yaml.Unmarshal(file, &cfg); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for key, field := range cfg.stringFields() {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}
	if v, ok := os.LookupEnv("AUTO_CONSUMPTION_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoConsumptionEnabled = b
		}
	}
	return cfg
}

func (c *Config) stringFields() map[string]*string {
	return map[string]*string{
		"APP_PORT":                  &c.AppPort,
		"APP_URL":                   &c.AppURL,
		"LOG_LEVEL":                 &c.LogLevel,
		"LOG_FILE":                  &c.LogFile,
		"TIMEZONE":                  &c.Timezone,
		"STORAGE_BACKEND":           &c.StorageBackend,
		"DB_USER":                   &c.DBUser,
		"DB_NAME":                   &c.DBName,
		"DB_PASSWORD":               &c.DBPassword,
		"DB_PORT":                   &c.DBPort,
		"DB_HOST":                   &c.DBHost,
		"MARKER_BACKEND":            &c.MarkerBackend,
		"MARKER_PATH":               &c.MarkerPath,
		"AUTO_CONSUMPTION_INTERVAL": &c.AutoConsumptionInterval,
		"AUTO_CONSUMPTION_POLICY":   &c.AutoConsumptionPolicy,
		"JWT_SECRET":                &c.JWTSecret,
		"SMTP_HOST":                 &c.SMTPHost,
		"SMTP_PORT":                 &c.SMTPPort,
		"SMTP_SENDER_NAME":          &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":           &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":        &c.SMTPAuthPassword,
		"MAIL_TO":                   &c.MailTo,
		"AWS_S3_BUCKET":             &c.AWSS3Bucket,
		"AWS_S3_REGION":             &c.AWSS3Region,
		"AWS_ACCESS_KEY":            &c.AWSAccessKey,
		"AWS_SECRET_KEY":            &c.AWSSecretKey,
	}
}

func GetConfig(key string) string {
	LoadConfig()
	if key == "AUTO_CONSUMPTION_ENABLED" {
		return strconv.FormatBool(config.AutoConsumptionEnabled)
	}
	if field, ok := config.stringFields()[key]; ok {
		return *field
	}
	return ""
}

// GetLocation resolves TIMEZONE, falling back to the process local zone.
func GetLocation() *time.Location {
	name := GetConfig("TIMEZONE")
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time: %s\n", name, err)
		return time.Local
	}
	return loc
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(GetConfig(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
