package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/openmuseum/collections/internal/config"
	"github.com/openmuseum/collections/internal/infra/database"
	"github.com/openmuseum/collections/internal/infra/gateway"
	"github.com/openmuseum/collections/internal/infra/repository"
	"github.com/openmuseum/collections/internal/present/rest"
	"github.com/openmuseum/collections/internal/present/rest/middleware"
	"github.com/openmuseum/collections/internal/service"
	"github.com/openmuseum/collections/internal/usecase"
)

func main() {
	configPath := flag.String("c", "/etc/collections/config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = database.MigratePostgres(db)
	if err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup trace provider", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
		e.Use(otelecho.Middleware("collections"))
	}

	sessionTTL := time.Duration(conf.Auth.SessionTTLHours) * time.Hour

	catalogRepo := repository.NewCatalogRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	userRepo := repository.NewUserRepository(db)
	imageGateway := gateway.NewImageGateway(conf.Images.UpstreamURL, mc)

	authService := service.NewAuthService(conf.Auth.JWTSecret, sessionTTL, rdb)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	e.Use(authMiddleware.IdentifyIdentity)

	handler := rest.NewHandler(
		usecase.NewSearchUsecase(catalogRepo),
		usecase.NewItemUsecase(catalogRepo),
		usecase.NewPersonUsecase(catalogRepo),
		usecase.NewImageUsecase(catalogRepo, imageGateway),
		usecase.NewFavouriteUsecase(favouriteRepo),
		usecase.NewUserUsecase(userRepo),
		authService,
		sessionTTL,
	)
	handler.RegisterRoutes(e, authMiddleware)

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("collections"),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown trace provider", slog.String("error", err.Error()))
		}
	}
	return cleanup, nil
}
