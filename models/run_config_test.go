package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RunConfigInput {
	return RunConfigInput{
		APIKey:       "token",
		Domain:       "dev",
		PatternCount: 2,
		StartDay:     "08:00:00",
		EndDay:       "20:00:00",
		StartNight:   "20:00:00",
		EndNight:     "08:00:00",
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"08:00:00", "08:00:00", true},
		{"8:30", "08:30:00", true},
		{" 23:59:59 ", "23:59:59", true},
		{"24:00", "", false},
		{"noon", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewRunConfig_Defaults(t *testing.T) {
	cfg, err := NewRunConfig(validInput())

	require.NoError(t, err)
	assert.Equal(t, TwoPatterns, cfg.Mode)
	assert.Equal(t, 2, cfg.PatternSlots())
	assert.Equal(t, ConstantVariant, cfg.Variant)
	assert.Equal(t, NightSlotFail, cfg.NightSlotPolicy)
	assert.Equal(t, "08:00:00", cfg.Day.Start.String())
	require.NotNil(t, cfg.Night)
	assert.Equal(t, "08:00:00", cfg.Night.End.String())
}

func TestNewRunConfig_SinglePatternIgnoresNightWindow(t *testing.T) {
	in := validInput()
	in.PatternCount = 1
	in.StartNight, in.EndNight = "", ""

	cfg, err := NewRunConfig(in)

	require.NoError(t, err)
	assert.Nil(t, cfg.Night)
}

func TestNewRunConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunConfigInput)
		want   string
	}{
		{"empty key", func(in *RunConfigInput) { in.APIKey = "  " }, "API key"},
		{"empty domain", func(in *RunConfigInput) { in.Domain = "" }, "domain"},
		{"domain with path", func(in *RunConfigInput) { in.Domain = "169.254.169.254/latest/meta-data?" }, "invalid domain"},
		{"domain with fragment", func(in *RunConfigInput) { in.Domain = "attacker.example#" }, "invalid domain"},
		{"dotted domain", func(in *RunConfigInput) { in.Domain = "evil.com" }, "invalid domain"},
		{"domain with credentials", func(in *RunConfigInput) { in.Domain = "user@host" }, "invalid domain"},
		{"domain too long", func(in *RunConfigInput) { in.Domain = strings.Repeat("a", 64) }, "invalid domain"},
		{"pattern count", func(in *RunConfigInput) { in.PatternCount = 3 }, "got 3"},
		{"bad day time", func(in *RunConfigInput) { in.StartDay = "8am" }, "day window"},
		{"missing night", func(in *RunConfigInput) { in.EndNight = "" }, "night window"},
		{"day overlaps night", func(in *RunConfigInput) { in.EndDay = "21:00:00" }, "21:00:00"},
		{"variant", func(in *RunConfigInput) { in.Variant = "random" }, "scheduling variant"},
		{"policy", func(in *RunConfigInput) { in.NightSlotPolicy = "ignore" }, "night slot policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			cfg, err := NewRunConfig(in)

			assert.Nil(t, cfg)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewRunConfig_NormalizesVariantAndPolicy(t *testing.T) {
	in := validInput()
	in.Variant = " Catalog "
	in.NightSlotPolicy = "DEGRADE"

	cfg, err := NewRunConfig(in)

	require.NoError(t, err)
	assert.Equal(t, CatalogVariant, cfg.Variant)
	assert.Equal(t, NightSlotDegrade, cfg.NightSlotPolicy)
}

func TestNormalizeDomain(t *testing.T) {
	d, err := NormalizeDomain(" Acme-2 ")
	require.NoError(t, err)
	assert.Equal(t, "acme-2", d)

	cfg, err := NewRunConfig(RunConfigInput{
		APIKey: "token", Domain: "DEV", PatternCount: 1, StartDay: "08:00", EndDay: "20:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Domain)
}
