// Package config handles runtime configuration: built-in defaults,
// overlaid by an optional YAML file, overlaid by command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the server.
type Config struct {
	// DataFile is the path to the JSON document file. Item images are
	// stored next to it under an images/ directory.
	DataFile string `yaml:"data_file"`

	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// AdminUser is the admin username created on first run.
	AdminUser string `yaml:"admin_user"`

	// LogFile, if set, receives a copy of all log output.
	LogFile string `yaml:"log_file"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		DataFile:  "inventar.json",
		Addr:      ":8080",
		AdminUser: "Admin",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the given command-line arguments, in increasing priority. The config
// file path itself comes from the -config flag; a missing -config file is
// an error, no file flag means no overlay.
func Load(name string, args []string) (*Config, error) {
	cfg := Defaults()

	// First pass picks up -config only, so the file is read before the
	// remaining flags overwrite it.
	configPath := configFlag(args)
	if configPath != "" {
		if err := cfg.overlayFile(configPath); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "")
	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.AdminUser, "user", cfg.AdminUser, "")
	fs.StringVar(&cfg.AdminUser, "u", cfg.AdminUser, "")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "")
	var ignored string
	fs.StringVar(&ignored, "config", "", "")
	fs.StringVar(&ignored, "c", "", "")

	fs.Usage = func() {
		fmt.Fprintf(os.Stdout, `Usage: %s [flags]

Flags:
  -d, -data <path>        document file path (default: inventar.json)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        admin username on first run (default: Admin)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -c, -config <path>      YAML config file, overridden by flags
  -h, -help               show this help and exit
`, name)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// configFlag extracts the -config/-c value without consuming the other
// flags, so the file can be read before the full flag set overlays it.
func configFlag(args []string) string {
	for i, arg := range args {
		switch arg {
		case "-config", "--config", "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
		for _, prefix := range []string{"-config=", "--config=", "-c="} {
			if len(arg) > len(prefix) && arg[:len(prefix)] == prefix {
				return arg[len(prefix):]
			}
		}
	}
	return ""
}
