package taxfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tax constants of the jurisdiction. They are inputs
// to the chargeable-gain summary only; the matching engine never
// applies them.
type Config struct {
	TaxRate           Quantity
	PersonalExemption Money
	Currency          string
}

// Defaults match the reference configuration (Irish CGT).
const (
	defaultTaxRate           = "0.33"
	defaultPersonalExemption = "1270"
	defaultCurrency          = "EUR"
)

// fileConfig is the YAML shape of the configuration file. Numeric
// values are read as strings so they can be parsed exactly, never
// through a binary float.
type fileConfig struct {
	TaxRate           string `yaml:"CGT_TAX_Normal"`
	PersonalExemption string `yaml:"PERSONAL_EXEMPTION"`
	Currency          string `yaml:"Currency"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	cfg, err := fileConfig{}.config()
	if err != nil {
		panic(err.Error()) // defaults are constants, they always parse
	}
	return cfg
}

// LoadConfig reads the YAML configuration at path. A missing file is
// not an error: every constant has a default.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	cfg, err := fc.config()
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}

func (fc fileConfig) config() (Config, error) {
	if fc.TaxRate == "" {
		fc.TaxRate = defaultTaxRate
	}
	if fc.PersonalExemption == "" {
		fc.PersonalExemption = defaultPersonalExemption
	}
	if fc.Currency == "" {
		fc.Currency = defaultCurrency
	}

	rate, err := ParseQuantity(fc.TaxRate)
	if err != nil {
		return Config{}, fmt.Errorf("CGT_TAX_Normal: %w", err)
	}
	exemption, err := ParseMoney(fc.PersonalExemption, fc.Currency)
	if err != nil {
		return Config{}, fmt.Errorf("PERSONAL_EXEMPTION: %w", err)
	}
	return Config{
		TaxRate:           rate,
		PersonalExemption: exemption,
		Currency:          fc.Currency,
	}, nil
}
