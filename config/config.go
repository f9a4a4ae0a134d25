package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "2MB"
	envPrefix                 = "LUMERA_"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Migrations controls schema migration on startup
	Migrations *MigrationsConfig `json:"migrations" yaml:"migrations"`

	// Mongo holds the catalog document store
	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	// Redis backs the catalog cache and server-side carts
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Razorpay *RazorpayConfig `json:"razorpay" yaml:"razorpay"`

	SMTP *SMTPConfig `json:"smtp" yaml:"smtp"`

	Pricing *PricingConfig `json:"pricing" yaml:"pricing"`

	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Storefront *StorefrontConfig `json:"storefront" yaml:"storefront"`

	// QRCode configuration for order tracking codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for order event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Seed *SeedConfig `json:"seed" yaml:"seed"`
}

type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int           `json:"bcryptCost" yaml:"bcryptCost"`
	AccessTokenTTL    time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`
	RefreshTokenTTL   time.Duration `json:"refreshTokenTTL" yaml:"refreshTokenTTL"`
	OTPTTL            time.Duration `json:"otpTTL" yaml:"otpTTL"`
	MinPasswordLength int           `json:"minPasswordLength" yaml:"minPasswordLength"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`

	// Statements slower than this are logged at warn level
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

type MigrationsConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

type MongoConfig struct {
	URI            string        `json:"uri" yaml:"uri"`
	Database       string        `json:"database" yaml:"database"`
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
}

type RedisConfig struct {
	Addr       string        `json:"addr" yaml:"addr"`
	Password   string        `json:"password" yaml:"password"`
	DB         int           `json:"db" yaml:"db"`
	CatalogTTL time.Duration `json:"catalogTTL" yaml:"catalogTTL"`
	CartTTL    time.Duration `json:"cartTTL" yaml:"cartTTL"`
}

// RazorpayConfig holds gateway credentials and the breaker guarding gateway calls
type RazorpayConfig struct {
	KeyID     string `json:"keyId" yaml:"keyId"`
	KeySecret string `json:"keySecret" yaml:"keySecret"`
	Currency  string `json:"currency" yaml:"currency"`

	// Consecutive failures before the breaker opens
	BreakerMaxFailures uint32 `json:"breakerMaxFailures" yaml:"breakerMaxFailures"`

	// How long the breaker stays open before probing again
	BreakerTimeout time.Duration `json:"breakerTimeout" yaml:"breakerTimeout"`
}

type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	FromName string `json:"fromName" yaml:"fromName"`
}

// PricingConfig defines the checkout fee schedule in whole rupees
type PricingConfig struct {
	FreeShippingThreshold int64 `json:"freeShippingThreshold" yaml:"freeShippingThreshold"`
	StandardShippingCost  int64 `json:"standardShippingCost" yaml:"standardShippingCost"`
	OrderNoteFee          int64 `json:"orderNoteFee" yaml:"orderNoteFee"`
	TaxRatePercent        int64 `json:"taxRatePercent" yaml:"taxRatePercent"`
}

// StorageConfig points at the media bucket, e.g. file:///var/lumera/media or s3://bucket
type StorageConfig struct {
	BucketURL      string `json:"bucketUrl" yaml:"bucketUrl"`
	MaxUploadBytes int64  `json:"maxUploadBytes" yaml:"maxUploadBytes"`
}

type StorefrontConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines event publishing configuration
type PubSubConfig struct {
	// Provider type: "noop", "local", "google" or "kafka"
	Provider string `json:"provider" yaml:"provider"`

	// Push endpoint for the local provider
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (google) or Kafka topic name (kafka)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Kafka brokers (for kafka provider)
	Brokers []string `json:"brokers" yaml:"brokers"`
}

// SeedConfig lists records ensured to exist at startup
type SeedConfig struct {
	Enabled bool         `json:"enabled" yaml:"enabled"`
	Coupons []SeedCoupon `json:"coupons" yaml:"coupons"`
}

type SeedCoupon struct {
	Code           string `json:"code" yaml:"code"`
	Type           string `json:"type" yaml:"type"`
	Value          int64  `json:"value" yaml:"value"`
	MinOrderAmount int64  `json:"minOrderAmount" yaml:"minOrderAmount"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// LUMERA_RAZORPAY_KEYSECRET -> razorpay.keySecret
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(strings.TrimPrefix(k, envPrefix), existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		// LUMERA_POSTGRES_REPLICAS_0_HOST, LUMERA_POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = 12
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = 15 * time.Minute
	}
	if cfg.Auth.RefreshTokenTTL == 0 {
		cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Auth.OTPTTL == 0 {
		cfg.Auth.OTPTTL = 10 * time.Minute
	}
	if cfg.Auth.MinPasswordLength == 0 {
		cfg.Auth.MinPasswordLength = 6
	}

	if cfg.Pricing == nil {
		cfg.Pricing = &PricingConfig{}
	}
	if cfg.Pricing.FreeShippingThreshold == 0 {
		cfg.Pricing.FreeShippingThreshold = 999
	}
	if cfg.Pricing.StandardShippingCost == 0 {
		cfg.Pricing.StandardShippingCost = 99
	}
	if cfg.Pricing.OrderNoteFee == 0 {
		cfg.Pricing.OrderNoteFee = 49
	}
	if cfg.Pricing.TaxRatePercent == 0 {
		cfg.Pricing.TaxRatePercent = 18
	}

	if cfg.Razorpay != nil {
		if cfg.Razorpay.Currency == "" {
			cfg.Razorpay.Currency = "INR"
		}
		if cfg.Razorpay.BreakerMaxFailures == 0 {
			cfg.Razorpay.BreakerMaxFailures = 5
		}
		if cfg.Razorpay.BreakerTimeout == 0 {
			cfg.Razorpay.BreakerTimeout = 30 * time.Second
		}
	}

	if cfg.Redis != nil {
		if cfg.Redis.CatalogTTL == 0 {
			cfg.Redis.CatalogTTL = 5 * time.Minute
		}
		if cfg.Redis.CartTTL == 0 {
			cfg.Redis.CartTTL = 30 * 24 * time.Hour
		}
	}

	if cfg.Storage != nil && cfg.Storage.MaxUploadBytes == 0 {
		cfg.Storage.MaxUploadBytes = 5 << 20
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads LUMERA_POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := envPrefix + "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
