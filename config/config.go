package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string
	DBPath   string
	Admins   []int64
	Port     string
	LogLevel string
}

func LoadConfig() (Config, error) {
	// Попытаемся загрузить .env файл, но не будем падать если его нет (production)
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return Config{}, fmt.Errorf("BOT_TOKEN is not set")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./bot.db"
	}

	admins, err := ParseAdmins(os.Getenv("ADMINS"))
	if err != nil {
		return Config{}, err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		BotToken: token,
		DBPath:   dbPath,
		Admins:   admins,
		Port:     port,
		LogLevel: logLevel,
	}, nil
}

// ParseAdmins разбирает список ID администраторов вида "123,456".
func ParseAdmins(raw string) ([]int64, error) {
	var admins []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMINS: некорректный id %q: %w", part, err)
		}
		admins = append(admins, id)
	}
	return admins, nil
}
