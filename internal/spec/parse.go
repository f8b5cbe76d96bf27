package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrMultipleDocuments is returned when a YAML file holds more than one document.
var ErrMultipleDocuments = errors.New("multiple YAML documents are not supported")

// ParseConfig decodes a config file, rejecting unknown fields.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := DecodeStrictYAML(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DecodeStrictYAML decodes exactly one YAML document into out with known-field checking.
func DecodeStrictYAML(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return ErrMultipleDocuments
		}
		return err
	}
	return nil
}
