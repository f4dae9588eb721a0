package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
		Mode string `mapstructure:"mode"` // gin 运行模式
	} `mapstructure:"http"`
	Postgres struct {
		DSN         string `mapstructure:"dsn"`
		MaxOpen     int    `mapstructure:"max_open"`
		MaxIdle     int    `mapstructure:"max_idle"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"postgres"`
	Redis struct {
		Addr      string `mapstructure:"addr"`
		Password  string `mapstructure:"password"`
		DB        int    `mapstructure:"db"`
		JTIPrefix string `mapstructure:"jti_prefix"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers       []string `mapstructure:"brokers"`
		OpLogTopic    string   `mapstructure:"op_log_topic"`
		OpLogGroupID  string   `mapstructure:"op_log_group_id"`
		StartConsumer bool     `mapstructure:"start_consumer"`
	} `mapstructure:"kafka"`
	Etcd struct {
		Endpoints []string `mapstructure:"endpoints"`
		TTL       int      `mapstructure:"ttl"`
	} `mapstructure:"etcd"`
	JWT struct {
		Secret        string `mapstructure:"secret"`
		ExpireSeconds int    `mapstructure:"expire_seconds"`
		Issuer        string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`
	Log struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`
	AppMeta struct {
		Name    string `mapstructure:"name"`
		Env     string `mapstructure:"env"`
		Version string `mapstructure:"version"`
	} `mapstructure:"app_meta"`
	Elastic struct {
		Enable   bool     `mapstructure:"enable"`
		Addrs    []string `mapstructure:"addrs"`
		Username string   `mapstructure:"username"`
		Password string   `mapstructure:"password"`
		Index    string   `mapstructure:"index"`
	} `mapstructure:"elastic"`
	Chat struct {
		HistorySize int `mapstructure:"history_size"`
	} `mapstructure:"chat"`
	Cron struct {
		BackupSpec  string `mapstructure:"backup_spec"`
		BackupDir   string `mapstructure:"backup_dir"`
		CleanupSpec string `mapstructure:"cleanup_spec"`
		LogKeepDays int    `mapstructure:"log_keep_days"`
	} `mapstructure:"cron"`
	OTel struct {
		Endpoint     string  `mapstructure:"endpoint"`
		Insecure     bool    `mapstructure:"insecure"`
		SamplerRatio float64 `mapstructure:"sampler_ratio"`
		Enable       bool    `mapstructure:"enable"`
	} `mapstructure:"otel"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	// 默认值
	v.SetDefault("http.mode", "release")
	v.SetDefault("app_meta.name", "go-blogadmin")
	v.SetDefault("app_meta.env", "dev")
	v.SetDefault("app_meta.version", "v1")
	v.SetDefault("redis.jti_prefix", "jwt:jti:")
	v.SetDefault("chat.history_size", 100)
	v.SetDefault("cron.backup_spec", "0 3 * * *")
	v.SetDefault("cron.backup_dir", "backups")
	v.SetDefault("cron.cleanup_spec", "30 4 * * *")
	v.SetDefault("cron.log_keep_days", 30)
	v.SetDefault("elastic.index", "blog_article")
	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.sampler_ratio", 1.0)
	v.SetDefault("otel.insecure", true)
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	// ===== 逻辑校验 =====
	if c.HTTP.Addr == "" {
		return nil, errors.New("http.addr required")
	}
	if c.JWT.Secret == "" || len(c.JWT.Secret) < 16 {
		return nil, fmt.Errorf("jwt.secret too short (>=16)")
	}
	if c.JWT.ExpireSeconds <= 0 {
		return nil, fmt.Errorf("jwt.expire_seconds must >0")
	}
	if c.Elastic.Enable && len(c.Elastic.Addrs) == 0 {
		return nil, errors.New("elastic.addrs required when elastic.enable=true")
	}
	if c.OTel.Enable {
		if c.OTel.Endpoint == "" {
			return nil, errors.New("otel.endpoint required when otel.enable=true")
		}
		if c.OTel.SamplerRatio < 0 || c.OTel.SamplerRatio > 1 {
			return nil, errors.New("otel.sampler_ratio must be in [0,1]")
		}
	}
	if c.Cron.LogKeepDays <= 0 {
		c.Cron.LogKeepDays = 30
	}
	return &c, nil
}
