package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

type PatternMode int

const (
	SinglePattern PatternMode = 1
	TwoPatterns   PatternMode = 2
)

// SchedulingVariant selects where metric and pattern ids come from.
type SchedulingVariant string

const (
	// ConstantVariant uses the well-known metric and pattern ids.
	ConstantVariant SchedulingVariant = "constant"
	// CatalogVariant resolves the metric by name and takes pattern slots from
	// the templates not yet bound to a dataset.
	CatalogVariant SchedulingVariant = "catalog"
)

// NightSlotPolicy decides what happens in two-pattern mode when no second
// pattern slot is available.
type NightSlotPolicy string

const (
	NightSlotFail    NightSlotPolicy = "fail"
	NightSlotDegrade NightSlotPolicy = "degrade"
)

// ClockTime is a wall-clock time of day with second precision.
type ClockTime struct {
	seconds int
}

const secondsPerDay = 24 * 60 * 60

// ParseClockTime accepts "HH:MM" or "HH:MM:SS".
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return ClockTime{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time of day %q, expected HH:MM or HH:MM:SS", s)
}

// MustClockTime is ParseClockTime for literals.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats as HH:MM:SS.
func (c ClockTime) String() string {
	s := ((c.seconds % secondsPerDay) + secondsPerDay) % secondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// After reports whether c is later in the day than o.
func (c ClockTime) After(o ClockTime) bool {
	return c.seconds > o.seconds
}

// TimeWindow is a pattern's start/end. End before Start means the window
// crosses midnight.
type TimeWindow struct {
	Start ClockTime
	End   ClockTime
}

// domainLabel is a single DNS label; the domain becomes the leftmost label of
// the API host.
var domainLabel = regexp.MustCompile(`^[a-z0-9-]{1,63}$`)

// NormalizeDomain lower-cases domain and returns a *ConfigurationError unless
// it is a single DNS label.
func NormalizeDomain(domain string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return "", &ConfigurationError{Reason: "domain is required"}
	}
	if !domainLabel.MatchString(d) {
		return "", &ConfigurationError{Reason: fmt.Sprintf(
			"invalid domain %q, expected letters, digits and hyphens only", domain)}
	}
	return d, nil
}

// RunConfigInput is the raw operator input, as collected by the form or the
// command line.
type RunConfigInput struct {
	APIKey          string
	Domain          string
	PatternCount    int
	StartDay        string
	EndDay          string
	StartNight      string
	EndNight        string
	Variant         string
	MetricName      string
	NightSlotPolicy string
}

// RunConfig is the validated configuration of one batch run. It is built
// once by NewRunConfig and only read afterwards.
type RunConfig struct {
	APIKey          string
	Domain          string
	Mode            PatternMode
	Day             TimeWindow
	Night           *TimeWindow
	Variant         SchedulingVariant
	MetricName      string
	NightSlotPolicy NightSlotPolicy
}

// NewRunConfig validates in and returns a *ConfigurationError describing the
// first problem found.
func NewRunConfig(in RunConfigInput) (*RunConfig, error) {
	cfg := &RunConfig{
		APIKey:     strings.TrimSpace(in.APIKey),
		MetricName: in.MetricName,
	}
	if cfg.APIKey == "" {
		return nil, &ConfigurationError{Reason: "API key is required"}
	}
	domain, err := NormalizeDomain(in.Domain)
	if err != nil {
		return nil, err
	}
	cfg.Domain = domain

	switch PatternMode(in.PatternCount) {
	case SinglePattern, TwoPatterns:
		cfg.Mode = PatternMode(in.PatternCount)
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("pattern count must be 1 or 2, got %d", in.PatternCount)}
	}

	day, err := parseWindow(in.StartDay, in.EndDay)
	if err != nil {
		return nil, &ConfigurationError{Reason: "day window", Err: err}
	}
	cfg.Day = day

	if cfg.Mode == TwoPatterns {
		if in.StartNight == "" || in.EndNight == "" {
			return nil, &ConfigurationError{Reason: "night window is required in two-pattern mode"}
		}
		night, err := parseWindow(in.StartNight, in.EndNight)
		if err != nil {
			return nil, &ConfigurationError{Reason: "night window", Err: err}
		}
		if cfg.Day.End.After(night.Start) {
			return nil, &ConfigurationError{Reason: fmt.Sprintf(
				"day end time %s must not be later than night start time %s", cfg.Day.End, night.Start)}
		}
		cfg.Night = &night
	}

	switch v := SchedulingVariant(strings.ToLower(strings.TrimSpace(in.Variant))); v {
	case "", ConstantVariant:
		cfg.Variant = ConstantVariant
	case CatalogVariant:
		cfg.Variant = CatalogVariant
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown scheduling variant %q", in.Variant)}
	}

	switch p := NightSlotPolicy(strings.ToLower(strings.TrimSpace(in.NightSlotPolicy))); p {
	case "", NightSlotFail:
		cfg.NightSlotPolicy = NightSlotFail
	case NightSlotDegrade:
		cfg.NightSlotPolicy = NightSlotDegrade
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown night slot policy %q", in.NightSlotPolicy)}
	}

	return cfg, nil
}

func parseWindow(start, end string) (TimeWindow, error) {
	if start == "" || end == "" {
		return TimeWindow{}, errors.New("start and end time are required")
	}
	s, err := ParseClockTime(start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: s, End: e}, nil
}

// PatternSlots is the number of pattern templates a run needs.
func (c *RunConfig) PatternSlots() int {
	return int(c.Mode)
}
