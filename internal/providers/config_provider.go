package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"nodelete/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultMessageCacheSize = 16
	defaultMessageTTL       = 24 * time.Hour
	defaultCacheTTL         = time.Minute
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("host.messageCacheSize", defaultMessageCacheSize)
	v.SetDefault("host.messageTTL", defaultMessageTTL)
	v.SetDefault("cache.ttl", defaultCacheTTL)

	v.BindEnv("logger.level", "NODELETE_LOG_LEVEL")
	v.BindEnv("persistence.saveInterval", "NODELETE_SAVE_INTERVAL")
	v.BindEnv("persistence.filePath", "NODELETE_DATA_FILE")
	v.BindEnv("cache.enabled", "NODELETE_CACHE_ENABLED")
	v.BindEnv("cache.size", "NODELETE_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "NODELETE_METRICS_ENABLED")

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

	conf.AppName = "NoDeleteLogger"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
