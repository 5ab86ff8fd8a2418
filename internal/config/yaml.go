package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads one override layer from a YAML file with top-level
// "common" and "plugins" sections. Unknown top-level fields are
// rejected so typos surface instead of being silently dropped.
func LoadFile(path string) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, &ConfigError{Msg: fmt.Sprintf("open config file %s", path), Err: err}
	}
	defer f.Close()

	var layer Layer
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&layer); err != nil {
		if errors.Is(err, io.EOF) {
			return Layer{}, nil // empty file is an empty layer
		}
		return Layer{}, &ConfigError{Msg: fmt.Sprintf("parse config file %s", path), Err: err}
	}
	return layer, nil
}
