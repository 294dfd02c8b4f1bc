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

// Package main is the entry point for running the cache layer standalone.
package main

import (
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/bazario/cachekit/internal/apicache"
	"github.com/bazario/cachekit/internal/imagecache"
	"github.com/bazario/cachekit/internal/kvstore"
	"github.com/bazario/cachekit/internal/maintenance"
	"github.com/bazario/cachekit/internal/manager"
	"github.com/bazario/cachekit/internal/system/config"
	"github.com/bazario/cachekit/internal/system/database/provider"
	syshttp "github.com/bazario/cachekit/internal/system/http"
	"github.com/bazario/cachekit/internal/system/log"
)

func main() {
	logger := log.GetLogger()
	defer logger.Sync()

	home := getCachekitHome(logger)
	cfg := initConfigurations(logger, home)

	store, closeStore := initStore(logger, home, cfg)
	defer closeStore()

	imageCache := imagecache.New(store,
		syshttp.NewClientWithTimeout(time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second),
		imagecache.Config{
			Directory:    resolvePath(home, cfg.Cache.Image.Directory),
			TTL:          time.Duration(cfg.Cache.Image.TTLSeconds) * time.Second,
			MaxSizeBytes: cfg.Cache.Image.MaxSizeBytes,
		})
	apiCache := apicache.New(store, apicache.Config{
		DefaultTTL:   time.Duration(cfg.Cache.API.TTLSeconds) * time.Second,
		MaxSizeBytes: cfg.Cache.API.MaxSizeBytes,
	})

	scheduler := maintenance.NewScheduler(
		time.Duration(cfg.Cache.Maintenance.IntervalSeconds)*time.Second,
		imageCache, apiCache)
	cacheManager := manager.New(scheduler, apiCache)

	cacheManager.Mount()
	waitForShutdown(logger)
	cacheManager.Unmount()
}

// getCachekitHome retrieves and returns the cachekit home directory.
func getCachekitHome(logger *log.Logger) string {
	homeFlag := flag.String("home", "", "Path to the cachekit home directory")
	flag.Parse()

	if *homeFlag != "" {
		logger.Info("Using home from command line argument", log.String("home", *homeFlag))
		return *homeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initConfigurations loads the yaml configuration from the home directory.
func initConfigurations(logger *log.Logger, home string) *config.Config {
	configFilePath := path.Join(home, "conf/cachekit.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}
	return cfg
}

// initStore opens the persistent store described by the configuration. An
// empty data source type falls back to the in-memory store.
func initStore(logger *log.Logger, home string, cfg *config.Config) (kvstore.Store, func()) {
	dataSource := cfg.Storage.DataSource
	if dataSource.Type == "" {
		logger.Info("No data source configured, using in-memory store")
		return kvstore.NewInMemoryStore(), func() {}
	}

	if dataSource.Path != "" {
		dataSource.Path = resolvePath(home, dataSource.Path)
	}

	dbClient, err := provider.NewDBProvider().GetDBClient(dataSource)
	if err != nil {
		logger.Fatal("Failed to open the persistent store", log.Error(err))
	}

	store := kvstore.NewSQLStore(dbClient)
	if err := store.Init(); err != nil {
		logger.Fatal("Failed to initialize the persistent store", log.Error(err))
	}

	return store, func() {
		if err := dbClient.Close(); err != nil {
			logger.Error("Error closing the persistent store", log.Error(err))
		}
	}
}

// waitForShutdown blocks until the process receives an interrupt or terminate signal.
func waitForShutdown(logger *log.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	sig := <-signals
	logger.Info("Shutting down", log.String("signal", sig.String()))
}

// resolvePath joins relative paths onto the home directory.
func resolvePath(home, p string) string {
	if path.IsAbs(p) {
		return p
	}
	return path.Join(home, p)
}
