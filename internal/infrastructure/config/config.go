package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Image     ImageConfig
	Thumbnail ThumbnailConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	S3        S3Config
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type ImageConfig struct {
	ProjectRoot         string   `envconfig:"PROJECT_ROOT" default:"."`
	UploadPath          string   `envconfig:"UPLOAD_PATH" default:"files"`
	CacheDir            string   `envconfig:"IMAGE_CACHE_DIR" default:"assets/images"`
	ValidExtensions     []string `envconfig:"IMAGE_VALID_EXTENSIONS" default:"jpg,jpeg,gif,png,webp,bmp,tif,tiff"`
	BypassCache         bool     `envconfig:"IMAGE_BYPASS_CACHE" default:"false"`
	JPEGQuality         int      `envconfig:"IMAGE_JPEG_QUALITY" default:"80"`
	PNGCompressionLevel int      `envconfig:"IMAGE_PNG_COMPRESSION_LEVEL" default:"0"`
	// Interlace is passed to the encoder and takes part in the cache key. The
	// encoders only write non-interlaced output, so values other than "none"
	// are logged and ignored.
	Interlace       string `envconfig:"IMAGE_INTERLACE" default:"none"`
	FileMode        uint32 `envconfig:"IMAGE_FILE_MODE" default:"0644"`
	PredefinedSizes string `envconfig:"IMAGE_PREDEFINED_SIZES"`
}

// AbsProjectRoot returns ProjectRoot as an absolute path.
func (c ImageConfig) AbsProjectRoot() (string, error) {
	root, err := filepath.Abs(c.ProjectRoot)
	if err != nil {
		return "", fmt.Errorf("resolving project root: %w", err)
	}
	return root, nil
}

// AbsCacheDir resolves CacheDir against the project root.
func (c ImageConfig) AbsCacheDir() (string, error) {
	if filepath.IsAbs(c.CacheDir) {
		return filepath.Clean(c.CacheDir), nil
	}
	root, err := c.AbsProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, c.CacheDir), nil
}

type ThumbnailConfig struct {
	Enabled         bool     `envconfig:"THUMBNAILS_ENABLED" default:"true"`
	ValidFileTypes  []string `envconfig:"THUMBNAIL_VALID_FILE_TYPES" default:"jpg,jpeg,gif,png,webp,bmp,tif,tiff"`
	InlineMaxWidth  int      `envconfig:"THUMBNAIL_INLINE_MAX_WIDTH" default:"0"`
	InlineMaxHeight int      `envconfig:"THUMBNAIL_INLINE_MAX_HEIGHT" default:"0"`
	ErrorHTML       string   `envconfig:"THUMBNAIL_ERROR_HTML" default:"<br><p class=\"preview-image broken-image\">Broken image!</p>"`
}

type DatabaseConfig struct {
	Enabled         bool          `envconfig:"DB_ENABLED" default:"false"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	MigrationsPath  string        `envconfig:"DB_MIGRATIONS_PATH"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type S3Config struct {
	Enabled         bool   `envconfig:"S3_ENABLED" default:"false"`
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET"`
	Prefix          string `envconfig:"S3_PREFIX"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string `envconfig:"S3_PUBLIC_URL"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin int  `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"120"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
