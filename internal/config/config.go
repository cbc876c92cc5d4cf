package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const DefaultFile = "config.yaml"

type Config struct {
	HTTP struct {
		Port            int           `yaml:"port" validate:"min=1,max=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
		WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	} `yaml:"http"`
	Model struct {
		Path string `yaml:"path" validate:"required"`
		// Required makes a failed model load fatal instead of serving 503s.
		Required bool `yaml:"required"`
	} `yaml:"model"`
	Log struct {
		Level      string `yaml:"level" validate:"oneof=debug info warn error"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=0"`
		MaxBackups int    `yaml:"max_backups" validate:"min=0"`
	} `yaml:"log"`
}

func Default() *Config {
	var c Config
	c.HTTP.Port = 8080
	c.HTTP.ReadTimeout = 10 * time.Second
	c.HTTP.WriteTimeout = 10 * time.Second
	c.HTTP.ShutdownTimeout = 5 * time.Second
	c.Model.Path = "models/gb_model.gob"
	c.Log.Level = "info"
	c.Log.MaxSizeMB = 50
	c.Log.MaxBackups = 3
	return &c
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path reads DefaultFile when it exists.
func Load(path string) (*Config, error) {
	c := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := c.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.HTTP.Port = p
	}
	if v, ok := lookup("MODEL_PATH"); ok {
		c.Model.Path = v
	}
	if v, ok := lookup("MODEL_REQUIRED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MODEL_REQUIRED: %w", err)
		}
		c.Model.Required = b
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
