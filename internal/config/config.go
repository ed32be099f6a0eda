// Package config provides functionality for managing configuration options
// for the application using command-line flags, a config file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the HTTP API listening address (ip:port).
	Addr string `json:"addr" yaml:"addr"`

	// Backend selects the durable storage: memory, file, bolt or postgres.
	Backend string `json:"backend" yaml:"backend"`

	// Path is the storage directory for the file and bolt backends.
	Path string `json:"path" yaml:"path"`

	// DatabaseDSN holds the database connection string for the postgres backend.
	DatabaseDSN string `json:"database_dsn" yaml:"database_dsn"`

	// Codec selects the persisted encoding: json or cbor.
	Codec string `json:"codec" yaml:"codec"`

	// IDScheme selects how new account IDs are generated: time or uuid.
	IDScheme string `json:"id_scheme" yaml:"id_scheme"`

	// LogLevel is the minimum zap level: debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" yaml:"tls_cert"`
	TLSKey  string `json:"tls_key" yaml:"tls_key"`

	// Config is the path to the Config file.
	Config string `json:"-" yaml:"-"`
}

// Defaults returns Options populated with default values.
func Defaults() *Options {
	return &Options{
		Addr:     "localhost:8080",
		Backend:  "file",
		Path:     "data",
		Codec:    "json",
		IDScheme: "time",
		LogLevel: "info",
		Config:   "config.json",
	}
}

// options holds the current configuration values.
var options = Defaults()

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", options.Addr, "run on ip:port server")
	flag.StringVar(&options.Backend, "s", options.Backend, "storage backend: memory | file | bolt | postgres")
	flag.StringVar(&options.Path, "p", options.Path, "storage directory (file and bolt backends)")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Codec, "codec", options.Codec, "persisted encoding: json | cbor")
	flag.StringVar(&options.IDScheme, "ids", options.IDScheme, "account id scheme: time | uuid")
	flag.StringVar(&options.LogLevel, "l", options.LogLevel, "log level")
	flag.StringVar(&options.TLSCert, "cert", "", "path to server TLS certificate")
	flag.StringVar(&options.TLSKey, "key", "", "path to server TLS key")
	flag.StringVar(&options.Config, "config", options.Config, "path to config file")
	flag.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if err := LoadFile(options, options.Config); err != nil {
		log.Fatal(err)
	}

	ApplyEnv(options)

	return options
}

// LoadFile merges the config file at path into o. A missing file is not an
// error. Files ending in .yaml or .yml are read as YAML, everything else as JSON.
func LoadFile(o *Options, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, o)
	default:
		err = json.Unmarshal(data, o)
	}
	if err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}
	return nil
}

// TLSEnabled reports whether both TLS files are configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// ApplyEnv overrides fields of o with environment variables that are set.
func ApplyEnv(o *Options) {
	for env, dst := range map[string]*string{
		"SERVER_ADDRESS":  &o.Addr,
		"STORAGE_BACKEND": &o.Backend,
		"STORAGE_PATH":    &o.Path,
		"DATABASE_DSN":    &o.DatabaseDSN,
		"STORAGE_CODEC":   &o.Codec,
		"ID_SCHEME":       &o.IDScheme,
		"LOG_LEVEL":       &o.LogLevel,
		"TLS_CERT":        &o.TLSCert,
		"TLS_KEY":         &o.TLSKey,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}
