package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TwitchUsername     string
	TwitchChannel      string
	TwitchClientID     string
	TwitchClientSecret string
	TwitchRedirectURI  string
	TwitchTokenFile    string

	TelegramBotToken  string
	AuthorizedUserIDs string

	CommandPrefix  string
	CommandsDBPath string

	OllamaBaseURL    string
	OllamaModel      string
	OpenRouterAPIKey string
	GroqAPIKey       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TwitchUsername:     os.Getenv("TWITCH_BOT_USERNAME"),
		TwitchChannel:      os.Getenv("TWITCH_CHANNEL"),
		TwitchClientID:     os.Getenv("TWITCH_CLIENT_ID"),
		TwitchClientSecret: os.Getenv("TWITCH_CLIENT_SECRET"),
		TwitchRedirectURI:  os.Getenv("TWITCH_REDIRECT_URI"),
		TwitchTokenFile:    os.Getenv("TWITCH_TOKEN_FILE"),

		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		AuthorizedUserIDs: os.Getenv("AUTHORIZED_USER_IDS"),

		CommandPrefix:  os.Getenv("COMMAND_PREFIX"),
		CommandsDBPath: os.Getenv("COMMANDS_DB_PATH"),

		OllamaBaseURL:    os.Getenv("OLLAMA_BASE_URL"),
		OllamaModel:      os.Getenv("OLLAMA_MODEL"),
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
	}

	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	if cfg.TwitchTokenFile == "" {
		cfg.TwitchTokenFile = "twitch_token.json"
	}
	if cfg.CommandsDBPath == "" {
		cfg.CommandsDBPath = "data/papobot.db"
	}

	if cfg.TwitchUsername == "" || cfg.TwitchChannel == "" {
		log.Println("Aviso: variáveis da Twitch ausentes, o bot de chat não vai conectar")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Aviso: TELEGRAM_BOT_TOKEN ausente, o bot do Telegram fica desativado")
	}

	return cfg, nil
}
