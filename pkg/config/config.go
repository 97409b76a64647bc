package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INDUSTRAHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"INDUSTRAHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INDUSTRAHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INDUSTRAHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INDUSTRAHUB_DB_DSN"`
	Driver string `envconfig:"INDUSTRAHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INDUSTRAHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"INDUSTRAHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INDUSTRAHUB_DB_USER"`
	LegacyPassword string `envconfig:"INDUSTRAHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"INDUSTRAHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"INDUSTRAHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INDUSTRAHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INDUSTRAHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INDUSTRAHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INDUSTRAHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INDUSTRAHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"INDUSTRAHUB_REDIS_ADDR"`
	Password     string        `envconfig:"INDUSTRAHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"INDUSTRAHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INDUSTRAHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INDUSTRAHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INDUSTRAHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INDUSTRAHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INDUSTRAHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"INDUSTRAHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"INDUSTRAHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"INDUSTRAHUB_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"INDUSTRAHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
	RefreshCookieName      string `envconfig:"INDUSTRAHUB_REFRESH_COOKIE_NAME" default:"ih_refresh"`
	RefreshCookieSecure    bool   `envconfig:"INDUSTRAHUB_REFRESH_COOKIE_SECURE" default:"true"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"INDUSTRAHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INDUSTRAHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INDUSTRAHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INDUSTRAHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INDUSTRAHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"INDUSTRAHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"INDUSTRAHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"INDUSTRAHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"INDUSTRAHUB_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"INDUSTRAHUB_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"INDUSTRAHUB_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool   `envconfig:"INDUSTRAHUB_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"INDUSTRAHUB_GCS_ACCESS_MODE" default:"public"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"INDUSTRAHUB_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"INDUSTRAHUB_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"INDUSTRAHUB_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"INDUSTRAHUB_GCS_BUCKET_NAME" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"INDUSTRAHUB_GCS_DOWNLOAD_URL_EXPIRY" default:"8760h"`
}

type MediaConfig struct {
	MaxUploadMB       int `envconfig:"INDUSTRAHUB_MAX_UPLOAD_MB" default:"50"`
	MaxImages         int `envconfig:"INDUSTRAHUB_MEDIA_MAX_IMAGES" default:"10"`
	ImageMaxDimension int `envconfig:"INDUSTRAHUB_MEDIA_IMAGE_MAX_DIMENSION" default:"1920"`
	ThumbMaxDimension int `envconfig:"INDUSTRAHUB_MEDIA_THUMB_MAX_DIMENSION" default:"480"`
	ImageQuality      int `envconfig:"INDUSTRAHUB_MEDIA_IMAGE_QUALITY" default:"80"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INDUSTRAHUB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
