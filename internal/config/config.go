package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Stock    StockConfig    `yaml:"stock"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// StrictNotFound отдаёт 404 вместо исходного 400 на ненайденные сущности
	StrictNotFound bool     `yaml:"strict_not_found"`
	AllowOrigins   []string `yaml:"allow_origins"`
}

// DatabaseConfig Driver: memory | postgres | mysql
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxOpen  int    `yaml:"max_open_conns"`
	MaxIdle  int    `yaml:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	// Required закрывает /api bearer-токеном (кроме /api/auth/login)
	Required bool `yaml:"required"`
}

type StockConfig struct {
	SeedOnStartup bool `yaml:"seed_on_startup"`
}

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, ShutdownTimeout: 5 * time.Second, AllowOrigins: []string{"*"}},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "memory", SSLMode: "disable", MaxOpen: 25, MaxIdle: 5},
		Auth:     AuthConfig{JWTSecret: "farmatrack-dev-secret", TokenTTL: 24 * time.Hour},
		Stock:    StockConfig{SeedOnStartup: true},
	}
}

func Load(configFile string) (*Config, error) {
	c := Default()

	paths := []string{"etc/config-dev.yaml", "/etc/farmatrack/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if configFile != "" {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASSWORD")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Auth.JWTSecret, "JWT_SECRET")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")

	return c, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// OpenGormDB открывает БД по Database.Driver. Для memory возвращает nil, nil.
func (c *Config) OpenGormDB() (*gorm.DB, error) {
	var (
		sqlDB     *sql.DB
		dialector gorm.Dialector
		err       error
	)
	switch strings.ToLower(c.Database.Driver) {
	case "", "memory":
		return nil, nil
	case "postgres":
		sqlDB, err = sql.Open("postgres", c.postgresDSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case "mysql":
		connector, err := gomysql.NewConnector(c.mysqlConfig())
		if err != nil {
			return nil, fmt.Errorf("create connector: %w", err)
		}
		sqlDB = sql.OpenDB(connector)
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	default:
		return nil, fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	sqlDB.SetMaxOpenConns(c.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(c.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func (c *Config) postgresDSN() string {
	d := c.Database
	port := d.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, port, d.User, d.Password, d.Name, d.SSLMode)
}

func (c *Config) mysqlConfig() *gomysql.Config {
	d := c.Database
	port := d.Port
	if port == 0 {
		port = 3306
	}
	cfg := gomysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", d.Host, port)
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
