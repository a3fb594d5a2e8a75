package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	BIND_ADDRESS = "0.0.0.0:8080"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	DEBUG_MODE   = true
	LOG_LEVEL    = "info"
	LOG_JSON     = false
	// Durable store backend: disk, db, redis, s3 or memory
	STORE_TYPE     = "disk"
	STORE_DIR      = "./data"
	MYSQL_DSN      = "" // MySQL will be used if this is set
	SQLITE_FILE    = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	REDIS_ADDR     = "127.0.0.1:6379"
	REDIS_PASSWORD = ""
	REDIS_DB       = 0
	REDIS_PREFIX   = "ecotravel:"
	S3_BUCKET      = ""
	S3_REGION      = "us-east-1"
	S3_ENDPOINT    = "" // Custom endpoint for S3 compatible services
	S3_KEY         = ""
	S3_SECRET      = ""
	S3_PREFIX      = "favorites/"
	// Static site root. Pages found here are served and scanned for favorite buttons
	SITE_DIR         = "./site"
	BASE_URL         = "http://localhost:8080/"
	IMAGE_TABLE_FILE = "" // Optional TOML file overriding the built-in image tables
	FAVORITES_KEY    = "ecotravel_favorites"
	SESSION_KEY      = "change me in production"
	THUMB_MAX_SIZE   = 1280
)

func init() {
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvBool("LOG_JSON", &LOG_JSON)
	readEnvString("STORE_TYPE", &STORE_TYPE)
	readEnvString("STORE_DIR", &STORE_DIR)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("REDIS_ADDR", &REDIS_ADDR)
	readEnvString("REDIS_PASSWORD", &REDIS_PASSWORD)
	readEnvInt("REDIS_DB", &REDIS_DB)
	readEnvString("REDIS_PREFIX", &REDIS_PREFIX)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("SITE_DIR", &SITE_DIR)
	readEnvString("BASE_URL", &BASE_URL)
	readEnvString("IMAGE_TABLE_FILE", &IMAGE_TABLE_FILE)
	readEnvString("FAVORITES_KEY", &FAVORITES_KEY)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("THUMB_MAX_SIZE", &THUMB_MAX_SIZE)
}

// SQLConfigured reports whether a SQL database (MySQL or SQLite) is available
func SQLConfigured() bool {
	return MYSQL_DSN != "" || SQLITE_FILE != ""
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
