/*
 * Copyright (c) 2025, Bazario Labs. (https://bazario.io)
 *
 * Bazario Labs licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing the cache layer configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/bazario/cachekit/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// DataSource holds the persistent store connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// StorageConfig holds the persistent key-value store configuration details.
type StorageConfig struct {
	DataSource DataSource `yaml:"datasource"`
}

// HTTPConfig holds the outbound HTTP client configuration details.
type HTTPConfig struct {
	// TimeoutSeconds bounds every image download so a hung fetch cannot
	// hold the single-flight slot for its URL forever.
	TimeoutSeconds int `yaml:"timeout"`
}

// ImageCacheConfig holds the image cache configuration details.
type ImageCacheConfig struct {
	Directory    string `yaml:"directory"`
	TTLSeconds   int    `yaml:"ttl"`
	MaxSizeBytes int64  `yaml:"max_size_bytes"`
}

// APICacheConfig holds the API response cache configuration details.
type APICacheConfig struct {
	TTLSeconds   int   `yaml:"ttl"`
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
}

// MaintenanceConfig holds the maintenance scheduler configuration details.
type MaintenanceConfig struct {
	IntervalSeconds int `yaml:"interval"`
}

// CacheConfig holds the cache layer configuration details.
type CacheConfig struct {
	Image       ImageCacheConfig  `yaml:"image"`
	API         APICacheConfig    `yaml:"api"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

// Config holds the complete configuration details of the cache layer.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
}

// LoadConfig loads the configurations from the specified YAML file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in documented defaults for any unset configuration values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = DefaultFetchTimeoutSeconds
	}
	if c.Cache.Image.Directory == "" {
		c.Cache.Image.Directory = DefaultImageCacheDirectory
	}
	if c.Cache.Image.TTLSeconds <= 0 {
		c.Cache.Image.TTLSeconds = DefaultImageCacheTTLSeconds
	}
	if c.Cache.Image.MaxSizeBytes <= 0 {
		c.Cache.Image.MaxSizeBytes = DefaultImageCacheSizeBytes
	}
	if c.Cache.API.TTLSeconds <= 0 {
		c.Cache.API.TTLSeconds = DefaultAPICacheTTLSeconds
	}
	if c.Cache.API.MaxSizeBytes <= 0 {
		c.Cache.API.MaxSizeBytes = DefaultAPICacheSizeBytes
	}
	if c.Cache.Maintenance.IntervalSeconds <= 0 {
		c.Cache.Maintenance.IntervalSeconds = DefaultMaintenanceIntervalSeconds
	}
}
