// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Google  GoogleConfig  `mapstructure:"google"`
	TTS     TTSConfig     `mapstructure:"tts"`
	Extract ExtractConfig `mapstructure:"extract"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	DebugPort    int `mapstructure:"debug_port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int `mapstructure:"write_timeout"` // milliseconds
}

// AWSConfig holds settings for the Bedrock reasoner and Polly synthesizer.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Bedrock struct {
		ModelID     string  `mapstructure:"model_id"`
		MaxTokens   int     `mapstructure:"max_tokens"`
		Temperature float64 `mapstructure:"temperature"`
		TopP        float64 `mapstructure:"top_p"`
	} `mapstructure:"bedrock"`
}

// GoogleConfig holds settings for the Speech-to-Text and Places collaborators.
type GoogleConfig struct {
	Speech struct {
		APIKey          string `mapstructure:"api_key"`
		BaseURL         string `mapstructure:"base_url"`
		LanguageCode    string `mapstructure:"language_code"`
		Encoding        string `mapstructure:"encoding"`
		SampleRateHertz int    `mapstructure:"sample_rate_hertz"`
		Timeout         int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"speech"`

	Places struct {
		APIKey       string `mapstructure:"api_key"`
		BaseURL      string `mapstructure:"base_url"`
		RadiusMeters int    `mapstructure:"radius_meters"`
		Timeout      int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"places"`
}

// TTSConfig holds the default speech-synthesis options. Each field can be
// overridden per request; blanks fall back to these values.
type TTSConfig struct {
	VoiceID            string `mapstructure:"voice_id"`
	OutputFormat       string `mapstructure:"output_format"`
	Engine             string `mapstructure:"engine"`
	LanguageCode       string `mapstructure:"language_code"`
	SyllablesPerSecond int    `mapstructure:"syllables_per_second"`
}

// ExtractConfig optionally overrides the built-in entity extraction tables.
// Empty slices mean "use the defaults"; tests inject smaller fixtures.
type ExtractConfig struct {
	Landmarks         []string `mapstructure:"landmarks"`
	LocationSuffixes  []string `mapstructure:"location_suffixes"`
	FoodKeywords      []string `mapstructure:"food_keywords"`
	QualifierKeywords []string `mapstructure:"qualifier_keywords"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
