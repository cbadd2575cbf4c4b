package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"dataset-uploader/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadSettings.
const (
	ENV_API_KEY         = "TARGCONTROL_API_KEY"
	ENV_DOMAIN          = "TARGCONTROL_DOMAIN"
	ENV_BASE_URL_FORMAT = "TARGCONTROL_BASE_URL_FORMAT"
	ENV_REDIS_ADDRESS   = "REDIS_ADDRESS"
	ENV_REDIS_PASSWORD  = "REDIS_PASSWORD"
	ENV_REDIS_DB        = "REDIS_DB"
	ENV_SERVER_ADDRESS  = "SERVER_ADDRESS"
	ENV_APP_ENV         = "APP_ENV"
)

// Settings is the process configuration. Per-run values (pattern windows,
// variant, metric) are only defaults here; a run takes them from the form or
// flags through RunConfigInput.
type Settings struct {
	// Env is "prod" for the real API or "mock" for the fixture-backed client.
	Env           string        `yaml:"env"`
	Domain        string        `yaml:"domain"`
	BaseURLFormat string        `yaml:"base_url_format"`
	APIKey        string        `yaml:"-"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`

	RedisAddress  string        `yaml:"redis_address"`
	RedisPassword string        `yaml:"-"`
	RedisDB       int           `yaml:"redis_db"`
	RunLockTTL    time.Duration `yaml:"run_lock_ttl"`

	ServerAddress string `yaml:"server_address"`

	PatternCount    int    `yaml:"pattern_count"`
	StartTimeDay    string `yaml:"start_time_day"`
	EndTimeDay      string `yaml:"end_time_day"`
	StartTimeNight  string `yaml:"start_time_night"`
	EndTimeNight    string `yaml:"end_time_night"`
	Variant         string `yaml:"variant"`
	MetricName      string `yaml:"metric"`
	NightSlotPolicy string `yaml:"night_slot_policy"`
}

// DefaultSettings returns the built-in defaults of the upload form.
func DefaultSettings() Settings {
	return Settings{
		Env:             "prod",
		Domain:          TARGCONTROL_DEFAULT_DOMAIN,
		BaseURLFormat:   TARGCONTROL_BASE_URL_FORMAT,
		RunLockTTL:      RUN_LOCK_TTL_MINUTES * time.Minute,
		ServerAddress:   SERVER_ADDRESS,
		PatternCount:    int(models.SinglePattern),
		StartTimeDay:    DEFAULT_START_TIME_DAY,
		EndTimeDay:      DEFAULT_END_TIME_DAY,
		StartTimeNight:  DEFAULT_START_TIME_NIGHT,
		EndTimeNight:    DEFAULT_END_TIME_NIGHT,
		Variant:         string(models.ConstantVariant),
		NightSlotPolicy: string(models.NightSlotFail),
	}
}

// LoadSettings layers defaults, the optional YAML file at path, the optional
// dotenv file and the process environment, in that order.
func LoadSettings(path, envFile string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("failed to read settings file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("failed to parse settings file %q: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(ENV_APP_ENV, &s.Env)
	setString(ENV_API_KEY, &s.APIKey)
	setString(ENV_DOMAIN, &s.Domain)
	setString(ENV_BASE_URL_FORMAT, &s.BaseURLFormat)
	setString(ENV_REDIS_ADDRESS, &s.RedisAddress)
	setString(ENV_REDIS_PASSWORD, &s.RedisPassword)
	setString(ENV_SERVER_ADDRESS, &s.ServerAddress)

	if v, ok := os.LookupEnv(ENV_REDIS_DB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", ENV_REDIS_DB, v, err)
		}
		s.RedisDB = db
	}
	return nil
}

// RunConfigInput seeds a run's input with the configured defaults.
func (s Settings) RunConfigInput() models.RunConfigInput {
	return models.RunConfigInput{
		APIKey:          s.APIKey,
		Domain:          s.Domain,
		PatternCount:    s.PatternCount,
		StartDay:        s.StartTimeDay,
		EndDay:          s.EndTimeDay,
		StartNight:      s.StartTimeNight,
		EndNight:        s.EndTimeNight,
		Variant:         s.Variant,
		MetricName:      s.MetricName,
		NightSlotPolicy: s.NightSlotPolicy,
	}
}
