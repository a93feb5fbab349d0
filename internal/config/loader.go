package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads a Config from a YAML file and layers environment variable
// overrides on top.
type Loader struct {
	envPrefix string
}

// NewLoader returns a Loader whose auto-generated environment variable
// names are prefixed with "PERMTREE_".
func NewLoader() *Loader {
	return &Loader{envPrefix: "PERMTREE_"}
}

// LoadFile reads and unmarshals a YAML config file, then applies any
// matching environment variable overrides.
func (l *Loader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := l.LoadFromEnvironment(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

// LoadFromEnvironment mutates cfg in place, applying any environment
// variable that matches a field's "env" tag or its auto-generated
// PERMTREE_<PATH> name.
func (l *Loader) LoadFromEnvironment(cfg *Config) error {
	return l.applyEnvOverrides(reflect.ValueOf(cfg).Elem(), "")
}

func (l *Loader) applyEnvOverrides(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		envName := fieldType.Tag.Get("env")
		if envName == "" {
			fieldName := strings.ToUpper(fieldType.Name)
			if prefix != "" {
				envName = l.envPrefix + prefix + "_" + fieldName
			} else {
				envName = l.envPrefix + fieldName
			}
		}

		switch field.Kind() {
		case reflect.Struct:
			newPrefix := strings.ToUpper(fieldType.Name)
			if prefix != "" {
				newPrefix = prefix + "_" + newPrefix
			}
			if err := l.applyEnvOverrides(field, newPrefix); err != nil {
				return err
			}

		case reflect.String:
			if value := os.Getenv(envName); value != "" {
				field.SetString(value)
			}

		case reflect.Bool:
			if value := os.Getenv(envName); value != "" {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("%s: invalid boolean %q: %w", envName, value, err)
				}
				field.SetBool(b)
			}

		case reflect.Int, reflect.Int64:
			if value := os.Getenv(envName); value != "" {
				n, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return fmt.Errorf("%s: invalid integer %q: %w", envName, value, err)
				}
				field.SetInt(n)
			}
		}
	}
	return nil
}
