package cgt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything the engine must not hardcode: the fiscal-year
// boundary, the per-year rate and allowance table, and the quote-provider
// credentials.
type Config struct {
	Period PeriodConfig          `toml:"period"`
	Rates  map[string]RateConfig `toml:"rates"`
	Quotes QuotesConfig          `toml:"quotes"`
}

// PeriodConfig is the fiscal boundary: the month/day a new tax year starts.
type PeriodConfig struct {
	Month int `toml:"month"`
	Day   int `toml:"day"`
}

// RateConfig is one tax year's flat rate and tax-free allowance.
// Both are decimal strings; the allowance may carry thousands separators,
// as published by HMRC ("12,300.00").
type RateConfig struct {
	Rate      string `toml:"rate"`
	Allowance string `toml:"allowance"`
}

// QuotesConfig holds the AlphaVantage API credentials for the estimate path.
type QuotesConfig struct {
	AlphaVantageKey string `toml:"alphavantage_key"`
}

// DefaultConfig returns the built-in UK configuration: the 6 April boundary
// and the published allowances for the years the original ledgers cover.
func DefaultConfig() Config {
	return Config{
		Period: PeriodConfig{Month: 4, Day: 6},
		Rates: map[string]RateConfig{
			"2018/2019": {Rate: "0.2", Allowance: "11,700.00"},
			"2019/2020": {Rate: "0.2", Allowance: "12,000.00"},
			"2020/2021": {Rate: "0.2", Allowance: "12,300.00"},
			"2021/2022": {Rate: "0.2", Allowance: "12,300.00"},
		},
	}
}

// LoadConfig reads a TOML configuration file. A missing file falls back to
// the built-in defaults; a malformed file is a fatal error.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(content, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if c.Period == (PeriodConfig{}) {
		c.Period = DefaultConfig().Period
	}
	return c, nil
}

// TaxPeriod converts the configured boundary into the engine's value type.
func (c Config) TaxPeriod() TaxPeriod {
	return TaxPeriod{Month: time.Month(c.Period.Month), Day: c.Period.Day}
}

// TaxRates parses the configured rate table into the engine's value types.
func (c Config) TaxRates() (map[string]TaxRate, error) {
	rates := make(map[string]TaxRate, len(c.Rates))
	for year, rc := range c.Rates {
		rate, err := ParseQuantity(rc.Rate)
		if err != nil {
			return nil, fmt.Errorf("tax year %s: invalid rate %q: %w", year, rc.Rate, err)
		}
		allowance, err := ParseMoney(rc.Allowance, GBP)
		if err != nil {
			return nil, fmt.Errorf("tax year %s: invalid allowance %q: %w", year, rc.Allowance, err)
		}
		rates[year] = TaxRate{Rate: rate, Allowance: allowance}
	}
	return rates, nil
}
