package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig 定义 HTTP 服务器的监听配置参数
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 3000
}

// StorageConfig 定义留言存储配置
type StorageConfig struct {
	DataDir     string // 数据目录，存放 messages.json 与 messages.log
	DatabaseDSN string // 非空时改用数据库存储（PostgreSQL DSN）
}

// AdminConfig 定义管理面板的共享凭证
type AdminConfig struct {
	Username string
	Password string // 明文或 bcrypt 哈希（$2 开头按哈希处理）
}

// MailConfig 定义外发邮件账号配置，留空则关闭邮件通知
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Operator string // 运营收件地址，留空发给 Username 自己
}

// RedisConfig 定义 Redis 配置，Address 非空时冷却记录改用 Redis 共享
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// SubmissionConfig 定义提交守卫配置
type SubmissionConfig struct {
	Cooldown time.Duration // 同一邮箱的提交冷却窗口，默认 10s
}

// CORSConfig 定义跨域资源共享 (CORS) 配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，"*" 表示允许所有来源
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 启用彩色输出和详细堆栈信息
	LogFile     string // 非空时同时写入文件并轮转
}

// Config 是系统核心配置的根结构体，包含所有子系统的配置
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	WebRoot    string // 静态站点根目录
	Admin      AdminConfig
	Mail       MailConfig
	Redis      RedisConfig
	Submission SubmissionConfig
	CORS       CORSConfig
	Log        LogConfig
}

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//  1. 系统环境变量（最高优先级）
//  2. .env 文件（如果存在）
//  3. 默认值
//
// 环境变量前缀: AGROFIRMA_
// 例如: AGROFIRMA_SERVER_PORT, AGROFIRMA_ADMIN_USERNAME
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetEnvPrefix("agrofirma")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("storage.data_dir", "./data")
	viper.SetDefault("storage.database_dsn", "")
	viper.SetDefault("web.root", "./web/static")
	viper.SetDefault("admin.username", "")
	viper.SetDefault("admin.password", "")
	viper.SetDefault("mail.host", "")
	viper.SetDefault("mail.port", 587)
	viper.SetDefault("mail.username", "")
	viper.SetDefault("mail.password", "")
	viper.SetDefault("mail.operator", "")
	viper.SetDefault("redis.address", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("submission.cooldown", "10s")
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)
	viper.SetDefault("log.file", "")

	cooldown, err := time.ParseDuration(viper.GetString("submission.cooldown"))
	if err != nil {
		return nil, fmt.Errorf("invalid submission.cooldown: %w", err)
	}

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	adminUser := viper.GetString("admin.username")
	adminPass := viper.GetString("admin.password")

	// 管理面板凭证必须显式配置，缺省就拒绝启动
	if adminUser == "" || adminPass == "" {
		return nil, fmt.Errorf("admin credentials are required: set AGROFIRMA_ADMIN_USERNAME and AGROFIRMA_ADMIN_PASSWORD")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Storage: StorageConfig{
			DataDir:     viper.GetString("storage.data_dir"),
			DatabaseDSN: viper.GetString("storage.database_dsn"),
		},
		WebRoot: viper.GetString("web.root"),
		Admin: AdminConfig{
			Username: adminUser,
			Password: adminPass,
		},
		Mail: MailConfig{
			Host:     viper.GetString("mail.host"),
			Port:     viper.GetInt("mail.port"),
			Username: viper.GetString("mail.username"),
			Password: viper.GetString("mail.password"),
			Operator: viper.GetString("mail.operator"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Submission: SubmissionConfig{
			Cooldown: cooldown,
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: viper.GetBool("log.development"),
			LogFile:     viper.GetString("log.file"),
		},
	}

	return cfg, nil
}

// parseList 将逗号分隔的字符串解析为字符串切片
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile 尝试加载 .env 文件
//
// 加载顺序：
//  1. 当前目录的 .env
//  2. 父目录的 .env（从子目录运行时）
//
// 文件不存在时静默跳过；已存在的环境变量不会被覆盖。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
