package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"repopulse/internal/structures"
	"strings"
	"time"
)

const AppName = "RepoPulse"

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.baseUrl", "https://api.github.com/")
	v.SetDefault("github.htmlUrl", "https://github.com")
	v.SetDefault("github.pageSize", 5)
	v.SetDefault("github.maxPages", 10)
	v.SetDefault("github.timeout", 30*time.Second)
	v.SetDefault("pipeline.months", 25)
	v.SetDefault("pipeline.delay", 3*time.Second)
	v.SetDefault("pipeline.includeArchived", true)
	v.SetDefault("persistence.compression", "none")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 16)
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 9090)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.baseUrl", "REPOPULSE_GITHUB_BASE_URL")
	v.BindEnv("github.organization", "REPOPULSE_ORGANIZATION")
	v.BindEnv("pipeline.delay", "REPOPULSE_DELAY")
	v.BindEnv("persistence.filePath", "REPOPULSE_CHECKPOINT")
	v.BindEnv("logger.level", "REPOPULSE_LOG_LEVEL")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
