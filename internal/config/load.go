package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/nixstrap/internal/messages"
)

// parseInto decodes config TOML over the provided defaults, rejecting
// unknown keys so typos surface instead of silently reverting to defaults.
func parseInto(cfg *Config, data []byte, source string) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var unknown *toml.StrictMissingError
		if errors.As(err, &unknown) {
			return fmt.Errorf(messages.ConfigUnknownKeysFmt, source, unknown.String())
		}
		return fmt.Errorf(messages.ConfigInvalidTOMLFmt, source, err)
	}
	return nil
}
