package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server config
const DEFAULT_PORT = "8080"
const SHUTDOWN_TIMEOUT = 5 * time.Second

// Relational store config. Credentials only ever come from the environment.
const DB_DRIVER_POSTGRES = "postgres"
const DB_DRIVER_SQLITE = "sqlite"
const DEFAULT_DB_DRIVER = DB_DRIVER_POSTGRES
const DEFAULT_DB_HOST = "localhost"
const DEFAULT_DB_PORT = "5432"
const DEFAULT_DB_NAME = "test"
const DEFAULT_DB_SSLMODE = "disable"
const DEFAULT_DB_PATH = "./data/geocaches.db"
const DEFAULT_STORE_CONNECT_TIMEOUT = 5 * time.Second
const DEFAULT_STORE_QUERY_TIMEOUT = 10 * time.Second

// Flickr photo search config
const FLICKR_ENDPOINT_BASE = "https://api.flickr.com/services/rest"
const DEFAULT_FLICKR_TIMEOUT = 10 * time.Second
const FLICKR_PHOTOS_PER_PAGE = 12

// Redis photo cache config
const DEFAULT_REDIS_DB = 0
const DEFAULT_PHOTO_CACHE_TTL = time.Hour

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const FLICKR_PHOTOS_SEARCH_RESPONSE_RESOURCE = "flickr_photos_search_response.json"

// Config is the runtime configuration, read from the environment.
type Config struct {
	Env  string
	Port string

	DBDriver            string
	DBHost              string
	DBPort              string
	DBName              string
	DBUser              string
	DBPassword          string
	DBSSLMode           string
	DBPath              string
	StoreConnectTimeout time.Duration
	StoreQueryTimeout   time.Duration

	FlickrAPIKey   string
	FlickrEndpoint string
	FlickrTimeout  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PhotoCacheTTL time.Duration

	// ExposeErrorDetails puts raw store errors into the "message" field of error replies.
	ExposeErrorDetails bool
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("APP_ENV", "prod"),
		Port: getEnv("PORT", DEFAULT_PORT),

		DBDriver:            getEnv("DB_DRIVER", DEFAULT_DB_DRIVER),
		DBHost:              getEnv("DB_HOST", DEFAULT_DB_HOST),
		DBPort:              getEnv("DB_PORT", DEFAULT_DB_PORT),
		DBName:              getEnv("DB_NAME", DEFAULT_DB_NAME),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBSSLMode:           getEnv("DB_SSLMODE", DEFAULT_DB_SSLMODE),
		DBPath:              getEnv("DB_PATH", DEFAULT_DB_PATH),
		StoreConnectTimeout: getDuration("STORE_CONNECT_TIMEOUT", DEFAULT_STORE_CONNECT_TIMEOUT),
		StoreQueryTimeout:   getDuration("STORE_QUERY_TIMEOUT", DEFAULT_STORE_QUERY_TIMEOUT),

		FlickrAPIKey:   os.Getenv("FLICKR_API_KEY"),
		FlickrEndpoint: getEnv("FLICKR_ENDPOINT", FLICKR_ENDPOINT_BASE),
		FlickrTimeout:  getDuration("FLICKR_TIMEOUT", DEFAULT_FLICKR_TIMEOUT),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", DEFAULT_REDIS_DB),
		PhotoCacheTTL: getDuration("PHOTO_CACHE_TTL", DEFAULT_PHOTO_CACHE_TTL),

		ExposeErrorDetails: getBool("EXPOSE_ERROR_DETAILS", true),
	}
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n >= 0 {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
