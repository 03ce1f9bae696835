package codec

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/vm-abi/codec/internal/abi"
	"github.com/wippyai/vm-abi/errors"
)

const (
	DefaultMaxDepth          = 45
	DefaultMaxTokens         = 10_000
	DefaultMaxTotalEnumWidth = 10_000
)

// Config bounds the work a single encode or decode call may perform.
// It is passed explicitly to every Encoder and Decoder.
type Config struct {
	// MaxDepth is the deepest composite nesting accepted. Zero allows only
	// scalar and text values.
	MaxDepth uint64 `yaml:"max_depth"`
	// MaxTokens caps the number of value nodes visited per call.
	MaxTokens uint64 `yaml:"max_tokens"`
	// MaxTotalEnumWidth caps the payload width of any enum, in bytes.
	MaxTotalEnumWidth uint64 `yaml:"max_total_enum_width"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:          DefaultMaxDepth,
		MaxTokens:         DefaultMaxTokens,
		MaxTotalEnumWidth: DefaultMaxTotalEnumWidth,
	}
}

func (c Config) Validate() error {
	if c.MaxTokens == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "max_tokens must be positive")
	}
	if c.MaxDepth > abi.MaxTypeDepth {
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("max_depth %d exceeds the hard limit of %d", c.MaxDepth, abi.MaxTypeDepth))
	}
	return nil
}

// ParseConfig reads a YAML document over the defaults. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse limits")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	return ParseConfig(data)
}
