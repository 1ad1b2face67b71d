package config

import (
	"fmt"
	"starmap-server/internal/shared/utils"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Galaxy   GalaxyConfig
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

// GalaxyConfig carries the default generation parameters used when the caller
// does not override them explicitly.
type GalaxyConfig struct {
	WorldWidth        float64
	WorldHeight       float64
	DepthMin          float64
	DepthMax          float64
	DefaultMapSize    int
	DefaultDensityMin int
	DefaultDensityMax int
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := &Config{
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		Logging:  loadLoggingConfig(),
		Galaxy:   loadGalaxyConfig(),
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_OPEN_CONNS", "25"))
	maxIdleConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(utils.GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "starmap"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "true") == "true"
	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))
	ttl, _ := strconv.Atoi(utils.GetEnv("REDIS_CACHE_TTL_MINUTES", "60"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
		CacheTTL: time.Duration(ttl) * time.Minute,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: jsonFormat,
	}
}

func loadGalaxyConfig() GalaxyConfig {
	worldWidth, _ := strconv.ParseFloat(utils.GetEnv("GALAXY_WORLD_WIDTH", "1000"), 64)
	worldHeight, _ := strconv.ParseFloat(utils.GetEnv("GALAXY_WORLD_HEIGHT", "1000"), 64)
	depthMin, _ := strconv.ParseFloat(utils.GetEnv("GALAXY_DEPTH_MIN", "-25"), 64)
	depthMax, _ := strconv.ParseFloat(utils.GetEnv("GALAXY_DEPTH_MAX", "25"), 64)
	mapSize, _ := strconv.Atoi(utils.GetEnv("GALAXY_MAP_SIZE", "5"))
	densityMin, _ := strconv.Atoi(utils.GetEnv("GALAXY_DENSITY_MIN", "3"))
	densityMax, _ := strconv.Atoi(utils.GetEnv("GALAXY_DENSITY_MAX", "7"))

	return GalaxyConfig{
		WorldWidth:        worldWidth,
		WorldHeight:       worldHeight,
		DepthMin:          depthMin,
		DepthMax:          depthMax,
		DefaultMapSize:    mapSize,
		DefaultDensityMin: densityMin,
		DefaultDensityMax: densityMax,
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	if c.Galaxy.WorldWidth <= 0 || c.Galaxy.WorldHeight <= 0 {
		return fmt.Errorf("GALAXY_WORLD_WIDTH and GALAXY_WORLD_HEIGHT must be positive")
	}

	if c.Galaxy.DepthMin > c.Galaxy.DepthMax {
		return fmt.Errorf("GALAXY_DEPTH_MIN must not exceed GALAXY_DEPTH_MAX")
	}

	if c.Galaxy.DefaultMapSize < 1 || c.Galaxy.DefaultMapSize > 9 {
		return fmt.Errorf("GALAXY_MAP_SIZE must be between 1 and 9")
	}

	if c.Galaxy.DefaultDensityMin < 0 || c.Galaxy.DefaultDensityMax > 9 {
		return fmt.Errorf("GALAXY_DENSITY_MIN and GALAXY_DENSITY_MAX must be between 0 and 9")
	}

	if c.Galaxy.DefaultDensityMin > c.Galaxy.DefaultDensityMax {
		return fmt.Errorf("GALAXY_DENSITY_MIN must not exceed GALAXY_DENSITY_MAX")
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
