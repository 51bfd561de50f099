package internal

import (
	"fmt"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	VocabularySize  int     `env:"VOCABULARY_SIZE,default=1000" validate:"gt=1"`
	BatchSize       int     `env:"BATCH_SIZE,default=50" validate:"gt=0"`
	HiddenSize      int     `env:"HIDDEN_SIZE,default=24" validate:"gt=0"`
	LearningRate    float64 `env:"LEARNING_RATE,default=0.0001" validate:"gt=0"`
	Epochs          int     `env:"EPOCHS,default=1" validate:"gt=0"`
	Shuffle         bool    `env:"SHUFFLE,default=false"`
	Seed            uint64  `env:"SEED,default=42"`
	InputPath       string  `env:"INPUT_PATH,default=output.csv" validate:"required"`
	ReviewColumn    string  `env:"REVIEW_COLUMN,default=review" validate:"required"`
	SentimentColumn string  `env:"SENTIMENT_COLUMN,default=sentiment" validate:"required"`
	Languages       string  `env:"LANGUAGES"`
	BadgerFilepath  string  `env:"BADGER_FILEPATH,default=runs.badger" validate:"required"`
	LogLevel        string  `env:"LOG_LEVEL,default=INFO" validate:"required"`
	// Empty disables the export of the encoded corpus.
	EncodedOutputPath string `env:"ENCODED_OUTPUT_PATH"`
}

// DefaultConfig mirrors the env defaults. Used by tests and by callers
// embedding the pipeline without an environment.
func DefaultConfig() Config {
	return Config{
		VocabularySize:  1000,
		BatchSize:       50,
		HiddenSize:      24,
		LearningRate:    1e-4,
		Epochs:          1,
		Seed:            42,
		InputPath:       "output.csv",
		ReviewColumn:    "review",
		SentimentColumn: "sentiment",
		BadgerFilepath:  "runs.badger",
		LogLevel:        "INFO",
	}
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LanguageCodes splits LANGUAGES ("en,fr") into ISO 639-1 codes.
// An empty list means every language is kept.
func (c Config) LanguageCodes() []string {
	var codes []string
	for _, code := range strings.Split(c.Languages, ",") {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
