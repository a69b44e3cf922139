package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Google   GoogleConfig   `mapstructure:"google"`
	Cookie   CookieConfig   `mapstructure:"cookie"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Email    EmailConfig    `mapstructure:"email"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host                string        `mapstructure:"host"`
	Port                string        `mapstructure:"port"`
	Username            string        `mapstructure:"username"`
	Password            string        `mapstructure:"password"`
	DBName              string        `mapstructure:"dbname"`
	Charset             string        `mapstructure:"charset"`
	QueryTimeoutSeconds int           `mapstructure:"query_timeout_seconds"`
	QueryTimeout        time.Duration `mapstructure:"-"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret        string        `mapstructure:"secret"`
	ExpireMinutes int           `mapstructure:"expire_minutes"`
	ExpireTime    time.Duration `mapstructure:"-"`
}

// GoogleConfig Google 登录配置
type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

// CookieConfig 会话 Cookie 配置
type CookieConfig struct {
	Name          string `mapstructure:"name"`
	Domain        string `mapstructure:"domain"`
	MaxAgeSeconds int    `mapstructure:"max_age_seconds"`
}

// CORSConfig 跨域配置
// Cookie 认证下不能用 *，必须显式列出前端来源
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig 邮件配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		// 指定了配置文件路径
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		// 尝试查找外部配置文件
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/ispend")
		externalViper.AddConfigPath("$HOME/.ispend")

		if err := externalViper.ReadInConfig(); err == nil {
			// 找到外部配置文件，合并配置
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 支持环境变量覆盖（可选）
	v.SetEnvPrefix("ISPEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置 JWT 过期时间（默认 15 分钟，与会话 Cookie 同寿命）
	if cfg.JWT.ExpireMinutes <= 0 {
		cfg.JWT.ExpireMinutes = 15
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireMinutes) * time.Minute
	if cfg.Cookie.MaxAgeSeconds <= 0 {
		cfg.Cookie.MaxAgeSeconds = cfg.JWT.ExpireMinutes * 60
	}
	if cfg.Cookie.Name == "" {
		cfg.Cookie.Name = "ACCESS_TOKEN"
	}

	// 设置数据库查询超时（默认 5 秒）
	if cfg.Database.QueryTimeoutSeconds <= 0 {
		cfg.Database.QueryTimeoutSeconds = 5
	}
	cfg.Database.QueryTimeout = time.Duration(cfg.Database.QueryTimeoutSeconds) * time.Second

	// 保存到全局变量
	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  数据库: %s@%s:%s/%s",
		GlobalConfig.Database.Username,
		GlobalConfig.Database.Host,
		GlobalConfig.Database.Port,
		GlobalConfig.Database.DBName)
	log.Printf("  Google 登录: client_id=%s", maskSecret(GlobalConfig.Google.ClientID))
	log.Printf("  邮件服务: %v", GlobalConfig.Email.Enabled)
}

// maskSecret 只保留前 8 位，避免日志泄露完整凭据
func maskSecret(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
// release 模式返回 fallback，其余模式（含未初始化配置，视为开发环境）返回原始错误
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
