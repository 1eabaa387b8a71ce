package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"shopfloor/internal/adapters/out/blob"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the service.
const EnvPrefix = "SHOPFLOOR"

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel string

	BlobDriver     string
	BlobRoot       string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3PathStyle    bool
	S3Prefix       string
	S3AccessKeyID  string
	S3SecretKey    string
	QRSize         int
	PackingCodeJob string
	DeliveryJob    string
	RetryBatchSize int

	MetricsWindowDays int
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http-port", "8080")
	v.SetDefault("db-host", "localhost")
	v.SetDefault("db-port", "5432")
	v.SetDefault("db-sslmode", "disable")
	v.SetDefault("log-level", "info")
	v.SetDefault("blob-driver", string(blob.DriverFilesystem))
	v.SetDefault("blob-root", "./data/packing-codes")
	v.SetDefault("s3-path-style", false)
	v.SetDefault("qr-size", 300)
	v.SetDefault("packing-code-schedule", "0 * * * * *")
	v.SetDefault("delivery-sweep-schedule", "0 * * * * *")
	v.SetDefault("retry-batch-size", 50)
	v.SetDefault("metrics-window-days", 365)
}

// BindEnv makes v read SHOPFLOOR_* variables, with dashes in keys mapped to
// underscores (db-host is SHOPFLOOR_DB_HOST).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from path into the process environment. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// ConfigFrom reads the configuration out of v.
func ConfigFrom(v *viper.Viper) Config {
	return Config{
		HTTPPort:          v.GetString("http-port"),
		DBHost:            v.GetString("db-host"),
		DBPort:            v.GetString("db-port"),
		DBUser:            v.GetString("db-user"),
		DBPassword:        v.GetString("db-password"),
		DBName:            v.GetString("db-name"),
		DBSslMode:         v.GetString("db-sslmode"),
		LogLevel:          v.GetString("log-level"),
		BlobDriver:        v.GetString("blob-driver"),
		BlobRoot:          v.GetString("blob-root"),
		S3Bucket:          v.GetString("s3-bucket"),
		S3Region:          v.GetString("s3-region"),
		S3Endpoint:        v.GetString("s3-endpoint"),
		S3PathStyle:       v.GetBool("s3-path-style"),
		S3Prefix:          v.GetString("s3-prefix"),
		S3AccessKeyID:     v.GetString("s3-access-key-id"),
		S3SecretKey:       v.GetString("s3-secret-access-key"),
		QRSize:            v.GetInt("qr-size"),
		PackingCodeJob:    v.GetString("packing-code-schedule"),
		DeliveryJob:       v.GetString("delivery-sweep-schedule"),
		RetryBatchSize:    v.GetInt("retry-batch-size"),
		MetricsWindowDays: v.GetInt("metrics-window-days"),
	}
}

// Validate rejects a configuration the service cannot start with.
func (c Config) Validate() error {
	var problems []error
	for key, value := range map[string]string{
		"db-host": c.DBHost,
		"db-port": c.DBPort,
		"db-user": c.DBUser,
		"db-name": c.DBName,
	} {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, fmt.Errorf("%s is required", key))
		}
	}

	switch blob.Driver(c.BlobDriver) {
	case blob.DriverFilesystem:
	case blob.DriverS3:
		if c.S3Bucket == "" {
			problems = append(problems, errors.New("s3-bucket is required for the s3 blob driver"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown blob-driver %q", c.BlobDriver))
	}

	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log-level: %w", err)
	}
	return level, nil
}

// BlobConfig returns the packing-code image store settings.
func (c Config) BlobConfig() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.BlobDriver),
		Root:   c.BlobRoot,
		S3: blob.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			PathStyle: c.S3PathStyle,
			Prefix:    c.S3Prefix,

			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretKey,
		},
	}
}
