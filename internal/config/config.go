// Package config loads settings from an optional YAML file, TODOLIST_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the config file base name and env prefix.
	AppName = "todolist"

	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "TODOLIST"
)

// Config holds every setting the server and clients read.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Client ClientConfig `mapstructure:"client"`
}

// ServerConfig controls the HTTP listener and route layout.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	BasePath        string        `mapstructure:"base_path"`
	Mode            string        `mapstructure:"mode"`
	Swagger         bool          `mapstructure:"swagger"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig controls the in-memory collection.
type StoreConfig struct {
	Seed       bool   `mapstructure:"seed"`
	IDStrategy string `mapstructure:"id_strategy"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// ClientConfig is the API base URL configuration point used by controllers.
// An empty LocalBaseURL follows server.addr and server.base_path.
type ClientConfig struct {
	DeployedHostMarker string        `mapstructure:"deployed_host_marker"`
	LocalBaseURL       string        `mapstructure:"local_base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8888")
	v.SetDefault("server.base_path", "/.netlify/functions")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.swagger", true)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("store.seed", true)
	v.SetDefault("store.id_strategy", "uuid")
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("client.deployed_host_marker", "netlify")
	v.SetDefault("client.local_base_url", "")
	v.SetDefault("client.timeout", time.Duration(0))
}

// New returns a viper instance with defaults and env bindings applied.
// If path is empty, todolist.yaml is looked up in the working directory.
func New(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	return v
}

// Load reads the config file (missing default file is fine) and decodes v.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Server.BasePath = NormalizeBasePath(c.Server.BasePath)
	c.Server.Mode = strings.ToLower(strings.TrimSpace(c.Server.Mode))
	c.Store.IDStrategy = strings.ToLower(strings.TrimSpace(c.Store.IDStrategy))
	c.Client.LocalBaseURL = strings.TrimRight(strings.TrimSpace(c.Client.LocalBaseURL), "/")

	origins := c.CORS.AllowOrigins[:0]
	for _, o := range c.CORS.AllowOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORS.AllowOrigins = origins
}

// NormalizeBasePath returns "" for the root and "/x/y" otherwise.
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// ResolveAPIBase picks the API base URL for a controller loaded from origin:
// the same origin under base_path when deployed or when no local URL is
// pinned, the local URL otherwise.
func (c *Config) ResolveAPIBase(origin string) string {
	origin = strings.TrimRight(origin, "/")
	if marker := c.Client.DeployedHostMarker; marker != "" && strings.Contains(origin, marker) {
		return origin + c.Server.BasePath
	}
	if c.Client.LocalBaseURL == "" && origin != "" {
		return origin + c.Server.BasePath
	}
	return c.LocalAPIBase()
}

// LocalAPIBase is client.local_base_url, or the URL this process serves the
// API on when that is unset.
func (c *Config) LocalAPIBase() string {
	if c.Client.LocalBaseURL != "" {
		return c.Client.LocalBaseURL
	}
	return "http://" + dialHost(c.Server.Addr) + c.Server.BasePath
}

// dialHost turns a listen address into one a client can dial.
func dialHost(addr string) string {
	host, port, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return "localhost"
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// TodosURL is the collection endpoint under an API base URL.
func TodosURL(apiBase string) string {
	return strings.TrimRight(apiBase, "/") + "/todos"
}
