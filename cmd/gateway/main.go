package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/repae-esatic/gateway/client"
	"github.com/repae-esatic/gateway/internal/config"
	"github.com/repae-esatic/gateway/internal/infra/kv"
	"github.com/repae-esatic/gateway/internal/present/rest"
	"github.com/repae-esatic/gateway/internal/present/rest/middleware"
	"github.com/repae-esatic/gateway/internal/service"
	"github.com/repae-esatic/gateway/internal/session"
	"github.com/repae-esatic/gateway/internal/usecase"
)

func main() {
	ctx := context.Background()

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	conf, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to setup tracing: " + err.Error())
		}
		defer cleanup(ctx)
	}

	var rdb *redis.Client
	if conf.Server.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: conf.Server.RedisAddr,
			DB:   conf.Server.RedisDB,
		})
	}

	var store kv.Store
	switch {
	case rdb != nil:
		store = kv.NewRedisFromClient(rdb)
	case conf.Server.MemcachedAddr != "":
		store = kv.NewMemcached(conf.Server.MemcachedAddr)
	default:
		store = kv.NewMemory()
	}

	identity := client.NewIdentity(conf.Services.IdentityBase, middleware.TokenFromContext)
	content := client.NewContent(conf.Services.ContentBase, middleware.TokenFromContext)

	ambient := session.NewClockAmbient(19, 7)
	defer ambient.Close()

	sess := session.New(ctx, store, ambient, identity)
	defer sess.Theme.Close()

	directory := usecase.NewDirectoryUsecase(identity)
	profile := usecase.NewProfileUsecase(identity)
	offers := usecase.NewOffersUsecase(nil)
	candidatures := usecase.NewCandidatureUsecase(nil)
	loyalty := usecase.NewLoyaltyUsecase(nil)

	var notify rest.RealtimeSource
	if rdb != nil {
		notify = service.NewNotifyService(rdb)
	}

	handler := rest.NewHandler(directory, profile, offers, candidatures, loyalty, content, sess, notify)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("gateway"))
	}
	e.Use(middleware.IdentifyRequester)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTraceProvider(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := sdkresource.New(ctx,
		sdkresource.WithAttributes(
			semconv.ServiceName("repae-gateway"),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	slog.Info("tracing enabled", slog.String("endpoint", endpoint))

	return provider.Shutdown, nil
}
