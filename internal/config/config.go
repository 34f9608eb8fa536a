// Package config loads and represents the options the parsing core
// consults: the log/date format strings and the behavioral switches of
// the component design (double-decode, method/protocol prefixing,
// query-string stripping, crawler/IP/referer exclusion, static-file
// detection, and GeoIP database paths).
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the TOML-backed configuration for a parsing run, loaded the
// way cidrx's config package loads its settings file.
type Config struct {
	Core   Core   `toml:"core"`
	Input  Input  `toml:"input"`
	GeoIP  GeoIP  `toml:"geoip"`
	Output Output `toml:"output"`
}

// Core holds every option named in the component design's configuration
// table.
type Core struct {
	LogFormat  string `toml:"log_format"`
	DateFormat string `toml:"date_format"`

	DoubleDecode           bool `toml:"double_decode"`
	AppendMethod           bool `toml:"append_method"`
	AppendProtocol         bool `toml:"append_protocol"`
	IgnoreQstr             bool `toml:"ignore_qstr"`
	Code444As404           bool `toml:"code444_as_404"`
	ClientErrToUniqueCount bool `toml:"client_err_to_unique_count"`
	IgnoreCrawlers         bool `toml:"ignore_crawlers"`
	ListAgents             bool `toml:"list_agents"`

	StaticFiles       []string `toml:"static_files"`
	StaticFileMaxLen  int      `toml:"static_file_max_len"`
	IgnoreIPRanges    []string `toml:"ignore_ip_ranges"`
	IgnoreReferers    []string `toml:"ignore_referers"`
}

// Input configures where log lines come from; file-vs-pipe-vs-follow
// mechanics are ambient collaborators around the core.
type Input struct {
	Path           string `toml:"path"`
	Follow         bool   `toml:"follow"`
	LumberjackAddr string `toml:"lumberjack_addr"`
}

// GeoIP configures the optional country/continent/city database paths.
// City lookups are gated on CityDB being set, matching the
// geoip_database option's meaning in the component design.
type GeoIP struct {
	CountryDB string `toml:"country_db"`
	CityDB    string `toml:"city_db"`
}

// Output configures the ambient chart-rendering subcommand.
type Output struct {
	ChartPath string `toml:"chart_path"`
}

// Load reads a TOML configuration file from path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Core.StaticFileMaxLen == 0 {
		cfg.Core.StaticFileMaxLen = 1
	}
	return &cfg, nil
}

// Validate enforces the ConfigMissing fatal-error condition: date_format
// and log_format must be present before any parsing begins.
func (c *Config) Validate() error {
	if c.Core.DateFormat == "" {
		return fmt.Errorf("config: no date_format was found")
	}
	if c.Core.LogFormat == "" {
		return fmt.Errorf("config: no log_format was found")
	}
	return nil
}
