package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// Token lifetimes are expressed in minutes.
	TokenLifetimeMinutes        int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// LLMConfig contains settings for the language-model integration used to
// extract gratitude entries and transcribe images.
type LLMConfig struct {
	AnthropicAPIKey string `mapstructure:"anthropic_api_key" validate:"required"`
	ModelName       string `mapstructure:"model_name"`
}

// SpeechConfig contains settings for text-to-speech synthesis. The API key
// is optional; when absent, speech endpoints report that the feature is
// unavailable.
type SpeechConfig struct {
	ElevenLabsAPIKey string `mapstructure:"elevenlabs_api_key"`
}

// TaskConfig tunes the background task runner that drives memory
// extraction.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count" validate:"omitempty,gt=0"`
	QueueSize           int `mapstructure:"queue_size" validate:"omitempty,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"omitempty,gt=0"`
}
