package cgt

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig is a test helper writing a TOML configuration file.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cgt.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[period]
month = 1
day = 1

[rates."2020/2021"]
rate = "0.25"
allowance = "10,000.00"

[quotes]
alphavantage_key = "demo"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	period := cfg.TaxPeriod()
	if period.Month != time.January || period.Day != 1 {
		t.Errorf("period = %v, want 1 January", period)
	}
	if cfg.Quotes.AlphaVantageKey != "demo" {
		t.Errorf("key = %q, want demo", cfg.Quotes.AlphaVantageKey)
	}

	rates, err := cfg.TaxRates()
	if err != nil {
		t.Fatalf("TaxRates: %v", err)
	}
	rate, ok := rates["2020/2021"]
	if !ok {
		t.Fatal("missing rate for 2020/2021")
	}
	if !rate.Rate.Equal(Q(0.25)) {
		t.Errorf("rate = %s, want 0.25", rate.Rate)
	}
	if !rate.Allowance.Equal(M(10000, GBP)) {
		t.Errorf("allowance = %s, want 10000.00", rate.Allowance)
	}
}

func TestLoadConfigMissingFileFallsBack(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	period := cfg.TaxPeriod()
	if period.Month != time.April || period.Day != 6 {
		t.Errorf("default period = %v, want 6 April", period)
	}
	rates, err := cfg.TaxRates()
	if err != nil {
		t.Fatalf("TaxRates: %v", err)
	}
	if _, ok := rates["2020/2021"]; !ok {
		t.Error("default rates missing 2020/2021")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "this is not toml = = =")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("want an error for a malformed file")
	}
}

func TestLoadConfigPartialDefaultsPeriod(t *testing.T) {
	// A file configuring only rates keeps the UK boundary.
	path := writeConfig(t, `
[rates."2021/2022"]
rate = "0.2"
allowance = "12,300.00"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	period := cfg.TaxPeriod()
	if period.Month != time.April || period.Day != 6 {
		t.Errorf("period = %v, want the UK default", period)
	}
}

func TestTaxRatesInvalid(t *testing.T) {
	tests := []struct {
		name string
		rc   RateConfig
	}{
		{name: "bad rate", rc: RateConfig{Rate: "twenty", Allowance: "100"}},
		{name: "bad allowance", rc: RateConfig{Rate: "0.2", Allowance: "lots"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Rates: map[string]RateConfig{"2020/2021": tc.rc}}
			if _, err := cfg.TaxRates(); err == nil {
				t.Fatal("want an error, got none")
			}
		})
	}
}
