package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port             int
	MQTTBroker       string
	MQTTClientID     string
	ImageDirectory   string
	PublicDirectory  string
	DatabasePath     string
	LogDirectory     string
	ImageListLimit   int
	TelegramBotToken string
	TelegramChatID   string
}

func Load() *Config {
	return &Config{
		Port:             getEnvAsInt("PORT", 3000),
		MQTTBroker:       getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID:     getEnv("MQTT_CLIENT_ID", "fire-monitor-server"),
		ImageDirectory:   getEnv("IMAGE_DIR", filepath.Join(".", "images")),
		PublicDirectory:  getEnv("PUBLIC_DIR", filepath.Join(".", "public")),
		DatabasePath:     getEnv("DB_PATH", filepath.Join(".", "data", "fire_monitor.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		ImageListLimit:   getEnvAsInt("IMAGE_LIST_LIMIT", 50), // Last N images in /api/images
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
