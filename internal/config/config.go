package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Azure         AzureConfig          `koanf:"azure" validate:"required"`
	Harvest       *HarvestConfig       `koanf:"harvest"`
	Audio         *AudioConfig         `koanf:"audio"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

type AzureConfig struct {
	TenantID            string `koanf:"tenant_id" validate:"required"`
	ClientID            string `koanf:"client_id" validate:"required"`
	ClientSecret        string `koanf:"client_secret" validate:"required"`
	AccountURL          string `koanf:"account_url" validate:"required"`
	RecordingsContainer string `koanf:"recordings_container" validate:"required"`
	TalkdeskContainer   string `koanf:"talkdesk_container" validate:"required"`
}

type HarvestConfig struct {
	// MaxRecords caps how many records one harvest accepts from a single
	// day's listing. Zero selects the engine default.
	MaxRecords int `koanf:"max_records"`
}

type AudioConfig struct {
	// FFmpegPath overrides where the ffmpeg binary is found. Empty resolves
	// "ffmpeg" from PATH.
	FFmpegPath string `koanf:"ffmpeg_path"`
}

// LoadConfig loads the configuration from environment variables using koanf.
// Nesting uses a double underscore, e.g. CALLVAULT_AZURE__TENANT_ID.
func LoadConfig() (mainConfig *Config, err error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")
	err = k.Load(env.Provider("CALLVAULT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "CALLVAULT_")), "__", ".")
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load initial env variables")
	}

	mainConfig = &Config{}
	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal mainconfig")
	}

	validate := validator.New()
	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not validate the struct")
	}

	if mainConfig.Harvest == nil {
		mainConfig.Harvest = &HarvestConfig{}
	}
	if mainConfig.Audio == nil {
		mainConfig.Audio = &AudioConfig{}
	}

	// set default observability config if not provided
	// in config struct we set Observability as pointer type to check whether it is nil or not
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// fill some of the fields
	mainConfig.Observability.ServiceName = "callvault"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	// automatic pointer dereferencing for method calls
	err = mainConfig.Observability.Validate()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return
}
