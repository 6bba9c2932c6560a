package util

import (
	"strings"

	"github.com/pkg/errors"

	nt "vitrina/entity"
)

// Config is the vitrina config file.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	View   ViewConfig   `yaml:"view"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type StoreConfig struct {
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path,omitempty"`
	Dsn    string `yaml:"dsn,omitempty"`
	Status string `yaml:"status,omitempty"`
	Posts  string `yaml:"posts,omitempty"`
}

type ViewConfig struct {
	Language    string      `yaml:"language,omitempty"`
	DefaultSort *nt.Sort    `yaml:"default_sort,omitempty"`
	Columns     []nt.Column `yaml:"columns,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Path string `yaml:"path,omitempty"`
}

const (
	DuckStore = "duck"
	PgStore   = "pg"
)

// DefaultConfig reads vehicles.json into duckdb and serves on localhost.
func DefaultConfig() Config {
	return Config{
		Store:  StoreConfig{Kind: DuckStore, Path: "vehicles.json"},
		View:   ViewConfig{Language: "en"},
		Server: ServerConfig{Addr: "localhost:8087"},
		Log:    LogConfig{Path: "vitrina.log"},
	}
}

// LoadVitrina loads config from path over the defaults and checks the store section.
func LoadVitrina(path string) (cfg Config, err error) {

	cfg = DefaultConfig()
	err = LoadConfig(&cfg, path)
	if err != nil {
		return
	}

	err = cfg.Store.check()
	return
}

func (sc StoreConfig) check() error {

	switch strings.ToLower(sc.Kind) {
	case DuckStore:
		if sc.Path == "" {
			return errors.Errorf("duck store needs a path")
		}
	case PgStore:
		if sc.Dsn == "" {
			return errors.Errorf("pg store needs a dsn")
		}
	default:
		return errors.Errorf("unknown store kind: %q", sc.Kind)
	}
	return nil
}

// Sample is a commented starting config.
var Sample = []byte(`# vitrina config

store:
  # duck loads a json export of the vehicles table, pg reads it live
  kind: duck
  path: vehicles.json
  # dsn: postgres://vitrina@localhost:5432/raffle
  # status filters the snapshot, empty for all
  status: ""
  # posts is a yaml list of content hub posts served by the api
  # posts: posts.yaml

view:
  language: en
  default_sort:
    field: year
    dir: desc
  # columns:
  #   - field: brand
  #     width: 14
  #   - field: current_price
  #     title: price
  #     format: price

server:
  addr: localhost:8087

log:
  path: vitrina.log
`)
