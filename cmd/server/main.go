// Command server runs the conditions and locations handlers behind a local
// HTTP server, with Prometheus metrics and a health check.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/paddlewise/backend-go/internal/app"
	"github.com/bbernstein/paddlewise/backend-go/internal/config"
	"github.com/bbernstein/paddlewise/backend-go/internal/handler"
	"github.com/bbernstein/paddlewise/backend-go/internal/observability"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type lambdaHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// adapt serves a Lambda style handler over plain HTTP.
func adapt(h lambdaHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := make(map[string]string)
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		resp, err := h(r.Context(), events.APIGatewayProxyRequest{
			Path:                  r.URL.Path,
			HTTPMethod:            r.Method,
			QueryStringParameters: params,
			RequestContext: events.APIGatewayProxyRequestContext{
				RequestID: uuid.NewString(),
			},
		})
		if err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("Handler failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write([]byte(resp.Body))
	}
}

func newRouter(conditionsHandler *handler.ConditionsHandler, locationsHandler *handler.LocationsHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/conditions", adapt(conditionsHandler.HandleRequest)).Methods(http.MethodGet)
	r.HandleFunc("/locations", adapt(locationsHandler.HandleRequest)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, config.GetCacheConfig(), observability.NewMetrics())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing cache failed")
		}
	}()

	router := newRouter(
		handler.NewConditionsHandler(a.Conditions),
		handler.NewLocationsHandler(a.Locations),
	)

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
	)(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
	h = handlers.LoggingHandler(os.Stdout, h)

	addr := ":" + envOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
