package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// LLM generation and embeddings
	LLMURL         string // OpenAI-compatible endpoint, e.g. "http://localhost:11434/v1"
	LLMAPIKey      string // ignored by local backends, required by hosted ones
	LLMModel       string // chat model, e.g. "qwen3-8b"
	EmbeddingModel string // embedding model, e.g. "nomic-embed-text"

	UploadDir string
	DBPath    string

	// Voice mode for the terminal client
	SpeechEnabled bool
	TTSModel      string
	STTModel      string
	TTSVoice      string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		LLMURL:          getenvDefault("LLM_URL", "http://localhost:11434/v1"),
		LLMAPIKey:       getenvDefault("LLM_API_KEY", "ollama"),
		LLMModel:        getenvDefault("LLM_MODEL", "qwen3-8b"),
		EmbeddingModel:  getenvDefault("EMBEDDING_MODEL", "nomic-embed-text"),
		UploadDir:       getenvDefault("UPLOAD_DIR", "data"),
		DBPath:          getenvDefault("DB_PATH", "interviews.db"),
		SpeechEnabled:   getBoolDefault("SPEECH_ENABLED", false),
		TTSModel:        getenvDefault("TTS_MODEL", "tts-1"),
		STTModel:        getenvDefault("STT_MODEL", "whisper-1"),
		TTSVoice:        getenvDefault("TTS_VOICE", "alloy"),
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getBoolDefault(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid boolean: %v", k, v, err)
	}
	return b
}
