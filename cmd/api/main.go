package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/excusegen/excuse-agent/internal/api"
	"github.com/excusegen/excuse-agent/internal/middleware"
	"github.com/excusegen/excuse-agent/internal/setup"
	applog "github.com/excusegen/excuse-agent/internal/setup/logger"
	"github.com/excusegen/excuse-agent/internal/web"
	"github.com/go-openapi/spec"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Excuse Email Draft Tool",
			Description: "Generate professional excuse emails using a hosted model serving endpoint",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "excuse", Description: "Excuse generation"}},
		{TagProps: spec.TagProps{Name: "ops", Description: "Health, metrics and debug"}},
	}
}

func main() {
	// Setup logging, JSON in production and console everywhere else
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENVIRONMENT") == "production" {
		log.Logger = applog.New(os.Getenv("LOG_LEVEL"))
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()

	// Load Config
	cfg := setup.LoadConfig()
	if cfg.APIToken == "" && cfg.Provider == "databricks" {
		log.Warn().Msg("DATABRICKS_API_TOKEN not set, generation requests will fail")
	}

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	// Static form UI
	webServer := &web.Server{Dir: web.ResolvePublicDir()}

	// API
	handler := api.NewHandler(
		deps.Generator,
		deps.PromptConfig,
		deps.Registry,
		api.DebugInfo{
			TokenConfigured: cfg.APIToken != "",
			Endpoint:        cfg.EndpointURL,
			Provider:        cfg.Provider,
			Host:            cfg.Host,
			Port:            cfg.Port,
			Environment:     cfg.Environment,
		},
		webServer,
		&logger,
	)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	// OpenAPI
	openAPIConfig := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(openAPIConfig))

	// Static assets
	if webServer.Dir != "" {
		container.Handle("/static/", http.StripPrefix("/static/", webServer.StaticHandler()))
	}

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Server
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Info().
		Str("address", addr).
		Str("provider", cfg.Provider).
		Msg("Starting Excuse Email Draft Tool API")

	server := http.Server{
		Addr:    addr,
		Handler: corsHandler.Handler(container),
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
