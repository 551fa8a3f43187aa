package config

import (
	"fmt"
	"os"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config 远程监测服务配置
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig

	HTTP struct {
		Addr string
	}

	// 监测服务特定配置
	Monitoring struct {
		// 评分引擎读取的历史条数（history[0] 为上一次测量）
		HistoryCount int

		// Redis 缓存配置
		Cache struct {
			DangerKeyPrefix string // 危险标记缓存键前缀，如 "telesuivi:patient:"
			DangerSuffix    string // 危险标记缓存键后缀，如 ":danger"
			DangerTTL       int    // 危险标记 TTL（秒）
		}

		// 医生端名单并发评估数
		RosterConcurrency int
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = 5432
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "hibapneumo")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Monitoring.HistoryCount = 7
	cfg.Monitoring.Cache.DangerKeyPrefix = getEnv("CACHE_DANGER_PREFIX", "telesuivi:patient:")
	cfg.Monitoring.Cache.DangerSuffix = ":danger"
	cfg.Monitoring.Cache.DangerTTL = 30 // 30秒
	cfg.Monitoring.RosterConcurrency = 8

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
