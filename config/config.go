package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string          `mapstructure:"port"`
	ImageDir          string          `mapstructure:"image_dir"`
	DefaultCollection string          `mapstructure:"default_collection"`
	Embedder          EmbedderConfig  `mapstructure:"embedder"`
	Generator         GeneratorConfig `mapstructure:"generator"`
	Qdrant            QdrantConfig    `mapstructure:"qdrant"`
	Chunker           ChunkerConfig   `mapstructure:"chunker"`
	Retrieval         RetrievalConfig `mapstructure:"retrieval"`
}

type EmbedderConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Model     string `mapstructure:"model"`
	Dimension int    `mapstructure:"dimension"`
	APIKey    string `mapstructure:"api_key"`
}

type GeneratorConfig struct {
	Provider     string `mapstructure:"provider"` // "openai" or "gemini"
	Endpoint     string `mapstructure:"endpoint"`
	Model        string `mapstructure:"model"`
	APIKey       string `mapstructure:"api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
}

type QdrantConfig struct {
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

type ChunkerConfig struct {
	ChunkSize int `mapstructure:"chunk_size"`
	Overlap   int `mapstructure:"overlap"`
}

type RetrievalConfig struct {
	TopK                int     `mapstructure:"top_k"`
	ImageScoreThreshold float64 `mapstructure:"image_score_threshold"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Bind environment variables for secrets
	v.BindEnv("embedder.api_key", "OPENAI_API_KEY")
	v.BindEnv("generator.api_key", "OPENAI_API_KEY")
	v.BindEnv("generator.gemini_api_key", "GEMINI_API_KEY")
	v.BindEnv("qdrant.api_key", "QDRANT_API_KEY")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("image_dir", "./stored_images")
	v.SetDefault("default_collection", "my_docs")
	v.SetDefault("embedder.endpoint", "http://localhost:11434/v1")
	v.SetDefault("embedder.model", "mxbai-embed-large:latest")
	v.SetDefault("embedder.dimension", 1024)
	v.SetDefault("generator.provider", "openai")
	v.SetDefault("generator.endpoint", "http://localhost:11434/v1")
	v.SetDefault("qdrant.url", "http://localhost:6333")
	v.SetDefault("qdrant.timeout_secs", 15)
	v.SetDefault("chunker.chunk_size", 1000)
	v.SetDefault("chunker.overlap", 200)
	v.SetDefault("retrieval.top_k", 3)
	v.SetDefault("retrieval.image_score_threshold", 0.5)
}
