package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	StoreDriver string // mongo|sqlite|postgres
	MongoURI    string
	MongoDB     string
	DBDSN       string // sqlite/postgres only

	UploadDir      string
	MaxUploadBytes int64

	// CORSOrigins is the allow-list. A single "*" entry means allow every
	// origin (credentials disabled in that case, per the CORS spec).
	CORSOrigins []string
}

func FromEnv() Config {
	port := envOr("PORT", "3000")
	return Config{
		HTTPAddr:       ":" + port,
		StoreDriver:    envOr("STORE_DRIVER", "mongo"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        envOr("MONGO_DB", "examsdb"),
		DBDSN:          os.Getenv("DB_DSN"),
		UploadDir:      envOr("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 5<<20),
		CORSOrigins:    csvOr("CORS_ORIGINS", "*"),
	}
}

// AllowAllOrigins reports whether the CORS policy is fully open.
func (c Config) AllowAllOrigins() bool {
	return len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*"
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt64(k string, def int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(k), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
