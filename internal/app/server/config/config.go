package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath   = ".env"
	SecretKey = "SecRetKey"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	BlobFS         = "fs"
	BlobCloudinary = "cloudinary"

	PasswordLenient = "lenient"
	PasswordStrict  = "strict"
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Logger  logger
	Auth    auth
	Blob    blob
	Upload  upload
	Tracing tracing
}

type db struct {
	Driver         string `env:"DB_DRIVER" envDefault:"mongo"`
	DatabaseURI    string `env:"DATABASE_URI"`
	Name           string `env:"DB_NAME" envDefault:"todo_app"`
	TodoCollection string `env:"COLLECTION_NAME" envDefault:"todos"`
	UserCollection string `env:"USER_COLLECTION" envDefault:"users"`
	Migrations     string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type auth struct {
	Secret    string        `env:"SECRET_KEY"`
	Algorithm string        `env:"ALGORITHM" envDefault:"HS256"`
	TokenTTL  time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"48h"`

	// PasswordPolicy picks the registration password rules.
	PasswordPolicy string `env:"PASSWORD_POLICY" envDefault:"lenient"`
}

type blob struct {
	Driver     string `env:"BLOB_DRIVER" envDefault:"fs"`
	Bucket     string `env:"BLOB_BUCKET" envDefault:"images"`
	Dir        string `env:"BLOB_DIR" envDefault:"data"`
	BaseURL    string `env:"BLOB_BASE_URL" envDefault:"http://localhost:8000"`
	Cloudinary cloudinary
}

type cloudinary struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

type upload struct {
	Workers int `env:"UPLOAD_WORKERS" envDefault:"4"`
}

type tracing struct {
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env (if present), the optional config file and the process environment.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("load %s: %v", envPath, err)
		}
	}

	v := viper.GetViper()
	v.AutomaticEnv()
	setDefaults(v)

	// Set by the --config flag.
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	uri := v.GetString("database_uri")
	if uri == "" {
		uri = v.GetString("mongodb_connection_url")
	}

	config := Config{
		Env: v.GetString("app_env"),
		DB: db{
			Driver:         strings.ToLower(v.GetString("db_driver")),
			DatabaseURI:    uri,
			Name:           v.GetString("db_name"),
			TodoCollection: v.GetString("collection_name"),
			UserCollection: v.GetString("user_collection"),
			Migrations:     v.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Logger: logger{LogLevel: v.GetString("log_level")},
		Auth: auth{
			Secret:    v.GetString("secret_key"),
			Algorithm: strings.ToUpper(v.GetString("algorithm")),
			TokenTTL:  v.GetDuration("auth_token_ttl"),

			PasswordPolicy: strings.ToLower(v.GetString("password_policy")),
		},
		Blob: blob{
			Driver:  strings.ToLower(v.GetString("blob_driver")),
			Bucket:  v.GetString("blob_bucket"),
			Dir:     v.GetString("blob_dir"),
			BaseURL: strings.TrimRight(v.GetString("blob_base_url"), "/"),
			Cloudinary: cloudinary{
				CloudName: v.GetString("cloudinary_cloud_name"),
				APIKey:    v.GetString("cloudinary_api_key"),
				APISecret: v.GetString("cloudinary_api_secret"),
			},
		},
		Upload:  upload{Workers: v.GetInt("upload_workers")},
		Tracing: tracing{Endpoint: v.GetString("otel_exporter_otlp_endpoint")},
	}

	if config.Auth.Secret == "" && config.IsLocal() {
		config.Auth.Secret = SecretKey
	}
	if config.DB.Migrations == "" {
		config.DB.Migrations = "migrations/" + config.DB.Driver
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8000")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_driver", DriverMongo)
	v.SetDefault("db_name", "todo_app")
	v.SetDefault("collection_name", "todos")
	v.SetDefault("user_collection", "users")
	v.SetDefault("algorithm", "HS256")
	v.SetDefault("auth_token_ttl", "48h")
	v.SetDefault("password_policy", PasswordLenient)
	v.SetDefault("blob_driver", BlobFS)
	v.SetDefault("blob_bucket", "images")
	v.SetDefault("blob_dir", "data")
	v.SetDefault("blob_base_url", "http://localhost:8000")
	v.SetDefault("upload_workers", 4)
}

func (c *Config) validate() error {
	if c.Auth.Secret == "" {
		return errors.New("SECRET_KEY must be set outside of the local environment")
	}
	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported signing algorithm %q", c.Auth.Algorithm)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	switch c.Auth.PasswordPolicy {
	case PasswordLenient, PasswordStrict:
	default:
		return fmt.Errorf("unknown PASSWORD_POLICY %q", c.Auth.PasswordPolicy)
	}

	switch c.DB.Driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
		if c.DB.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI is required for driver %q", c.DB.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver)
	}

	switch c.Blob.Driver {
	case BlobFS:
	case BlobCloudinary:
		if c.Blob.Cloudinary.CloudName == "" || c.Blob.Cloudinary.APIKey == "" || c.Blob.Cloudinary.APISecret == "" {
			return errors.New("cloudinary credentials are required for BLOB_DRIVER=cloudinary")
		}
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.Blob.Driver)
	}

	if c.Upload.Workers < 1 {
		return fmt.Errorf("UPLOAD_WORKERS must be at least 1, got %d", c.Upload.Workers)
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
