// Package config は設定ファイル・環境変数・既定値から実行設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/gemini-layout-kit/pkg/domain"
	"github.com/spf13/viper"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	APIKey      string       `mapstructure:"api_key"`
	Model       string       `mapstructure:"model"`
	Temperature float32      `mapstructure:"temperature"`
	Log         LogConfig    `mapstructure:"log"`
	Intake      IntakeConfig `mapstructure:"intake"`
	Output      OutputConfig `mapstructure:"output"`
}

// LogConfig はログ出力の設定です。
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IntakeConfig は画像読み込みの設定です。
type IntakeConfig struct {
	// FetchTimeout はURLから画像を取得する際のタイムアウトです。
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// MaxBytes は受け付ける画像サイズの上限です。
	MaxBytes int `mapstructure:"max_bytes"`
	// CompressAbove を超える画像はJPEGに再圧縮します。0 なら圧縮しません。
	CompressAbove int `mapstructure:"compress_above"`
	JPEGQuality   int `mapstructure:"jpeg_quality"`
}

// OutputConfig は生成物の出力先です。
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// envBindings は設定キーと環境変数の対応です。先に書いた変数が優先されます。
var envBindings = map[string][]string{
	"api_key":               {"API_KEY", "GEMINI_API_KEY"},
	"model":                 {"LAYOUT_MODEL"},
	"temperature":           {"LAYOUT_TEMPERATURE"},
	"log.level":             {"LAYOUT_LOG_LEVEL"},
	"log.format":            {"LAYOUT_LOG_FORMAT"},
	"intake.fetch_timeout":  {"LAYOUT_FETCH_TIMEOUT"},
	"intake.max_bytes":      {"LAYOUT_MAX_BYTES"},
	"intake.compress_above": {"LAYOUT_COMPRESS_ABOVE"},
	"intake.jpeg_quality":   {"LAYOUT_JPEG_QUALITY"},
	"output.dir":            {"LAYOUT_OUTPUT_DIR"},
}

// Load は既定値、設定ファイル (path が空でなければ)、環境変数の順に設定を重ねて読み込みます。
// APIキーの有無はここでは検証しません。Validate を呼んでください。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("環境変数のバインドに失敗しました (%s): %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗しました: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &cfg, nil
}

// Validate は起動に必須の設定を確認します。
// 認証情報がない場合は domain.ErrMissingAPIKey を返します。実行中の回復はできません。
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return domain.ErrMissingAPIKey
	}

	var errs []error
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2: %v", c.Temperature))
	}
	if c.Intake.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("intake.max_bytes must be positive: %d", c.Intake.MaxBytes))
	}
	if c.Intake.JPEGQuality < 1 || c.Intake.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("intake.jpeg_quality must be between 1 and 100: %d", c.Intake.JPEGQuality))
	}
	if c.Intake.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("intake.fetch_timeout must be positive: %s", c.Intake.FetchTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return domain.NewConfigError("invalid configuration", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", "gemini-2.5-flash")
	v.SetDefault("temperature", 0.2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("intake.fetch_timeout", "30s")
	v.SetDefault("intake.max_bytes", 20<<20)
	v.SetDefault("intake.compress_above", 0)
	v.SetDefault("intake.jpeg_quality", 85)

	v.SetDefault("output.dir", "layout-out")
}
