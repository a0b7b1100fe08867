package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort         string
	AnalyticsDBPath    string
	MaxFileSize        int64
	LargeDocumentPages int
}

// LoadConfig reads defaults, an optional config.yaml, and environment
// overrides (SERVER_PORT, ANALYTICS_DB_PATH, MAX_FILE_SIZE,
// LARGE_DOCUMENT_PAGES).
func LoadConfig() *Config {
	v := viper.New()

	v.SetDefault("server_port", "8080")
	v.SetDefault("analytics_db_path", "data/analytics.db")
	v.SetDefault("max_file_size", int64(10*1024*1024))
	v.SetDefault("large_document_pages", 5)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Printf("config: failed to read config file: %v", err)
		}
	}

	v.AutomaticEnv()

	return &Config{
		ServerPort:         v.GetString("server_port"),
		AnalyticsDBPath:    v.GetString("analytics_db_path"),
		MaxFileSize:        v.GetInt64("max_file_size"),
		LargeDocumentPages: v.GetInt("large_document_pages"),
	}
}
