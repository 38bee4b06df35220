package main

import (
	"os"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/smallyu/go-chainkeys/internal/crypto/elgamal"
	"github.com/smallyu/go-chainkeys/internal/crypto/numtheory"
)

// Config is the CLI configuration file layout.
type Config struct {
	Chain    string        `toml:"chain"`
	LogLevel string        `toml:"logLevel"`
	ElGamal  ElGamalConfig `toml:"elgamal"`
	BSGS     BSGSConfig    `toml:"bsgs"`
}

// ElGamalConfig selects the ElGamal group and the parameter search bounds.
type ElGamalConfig struct {
	Prime             string `toml:"prime"`
	Generator         string `toml:"generator"`
	SafePrimeBits     int    `toml:"safePrimeBits"`
	Rounds            int    `toml:"rounds"`
	GeneratorAttempts int    `toml:"generatorAttempts"`
}

// BSGSConfig bounds additive decryption.
type BSGSConfig struct {
	Bound uint64 `toml:"bound"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Chain:    "btc",
		LogLevel: "error",
		ElGamal: ElGamalConfig{
			Prime:             elgamal.DefaultPrimeHex,
			Generator:         elgamal.DefaultGeneratorHex,
			SafePrimeBits:     256,
			Rounds:            10,
			GeneratorAttempts: 100,
		},
		BSGS: BSGSConfig{
			Bound: numtheory.DefaultBound,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path or a missing file
// yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := tml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decode %s", path)
	}
	return cfg, nil
}

// Params returns the configured ElGamal group. A group other than the
// built-in one must pass Validate.
func (c *Config) Params() (*elgamal.Params, error) {
	params, err := elgamal.ParseParams(c.ElGamal.Prime, c.ElGamal.Generator)
	if err != nil {
		return nil, err
	}
	if params.Equal(elgamal.DefaultParams()) {
		return params, nil
	}
	if err := params.Validate(c.ElGamal.Rounds); err != nil {
		return nil, errors.Wrap(err, "config: elgamal group")
	}
	return params, nil
}
