/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	importProvider "github.com/masonvector/claim-import-service/internal/import_job/provider"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	cdscontext "github.com/masonvector/claim-import-service/internal/system/context"
	"github.com/masonvector/claim-import-service/internal/system/log"
	"github.com/masonvector/claim-import-service/internal/system/managers"
	"github.com/masonvector/claim-import-service/internal/system/schedulers"
	"github.com/masonvector/claim-import-service/internal/system/utils"
)

const (
	configFile      = "/repository/conf/deployment.yaml"
	shutdownTimeout = 15 * time.Second
)

func main() {
	home := getServiceHome()

	if _, err := config.LoadEnvFiles("config/*.env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load env files: %v\n", err)
	}

	cfg, err := config.LoadConfig(home, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := log.InitWithFormat(cfg.Log.LogLevel, cfg.Log.Format, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, home, *cfg); err != nil {
		logger.Fatal("Claim import service stopped with an error", log.Error(err))
	}
	logger.Info("Claim import service stopped")
}

func run(ctx context.Context, home string, cfg config.Config) error {

	logger := log.GetLogger()
	imports, err := importProvider.NewImportProvider(ctx, cfg, home)
	if err != nil {
		return fmt.Errorf("failed to initialize import stores: %w", err)
	}
	defer func() {
		if err := imports.Close(); err != nil {
			logger.Warn("Failed to close import stores", log.Error(err))
		}
	}()

	mux, err := initMultiplexer(imports, cfg)
	if err != nil {
		return err
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Addr.Host, cfg.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", serverAddr, err)
	}
	server := &http.Server{
		Handler:           utils.EnableCORS(cfg.Auth.CORSAllowedOrigins, cdscontext.TraceMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("Claim import service started", log.String("address", serverAddr))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve requests: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		schedulers.StartSnapshotCleanupScheduler(groupCtx, imports.GetImportService(), cfg.Import.CleanupInterval)
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down claim import service")
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(imports importProvider.ImportProviderInterface, cfg config.Config) (*http.ServeMux, error) {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, imports, cfg)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		return nil, fmt.Errorf("failed to register the services: %w", err)
	}
	return mux, nil
}

func getServiceHome() string {

	// Parse project directory from command line arguments.
	homeFlag := flag.String("home", "", "Path to the claim import service home directory")
	flag.Parse()

	if *homeFlag != "" {
		return *homeFlag
	}
	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
		return "."
	}
	return dir
}
