package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/extracurricular/internal/announce"
	"example.com/extracurricular/internal/api"
	"example.com/extracurricular/internal/catalog"
	"example.com/extracurricular/internal/config"
	"example.com/extracurricular/internal/domain"
	"example.com/extracurricular/internal/observability"
	httptransport "example.com/extracurricular/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := catalog.NewInMemoryRegistry()
	seedRosterGauges(registry)

	announcer, dispatcher, cleanup := buildAnnouncer(cfg)
	defer cleanup()
	if dispatcher != nil {
		go dispatcher.Start(ctx)
	}

	service := domain.NewService(registry, announcer)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Basic request logger
	logger := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:           cfg.HTTPAddress,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, logger(mux))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("extracurricular-service listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	// In-flight handlers may announce events until Shutdown returns.
	cancel()
	if dispatcher != nil {
		dispatcher.Wait()
	}
}

// buildAnnouncer wires the configured event sinks. With no sinks configured the
// service runs with announcements disabled.
func buildAnnouncer(cfg config.Config) (announce.Announcer, *announce.Dispatcher, func()) {
	publishers := make([]announce.Publisher, 0, 2)
	cleanup := func() {}

	if len(cfg.KafkaBrokers) > 0 {
		writer := announce.NewKafkaWriter(cfg.KafkaBrokers, cfg.RosterTopic)
		cleanup = func() {
			if err := writer.Close(); err != nil {
				log.Printf("kafka writer close: %v", err)
			}
		}
		publishers = append(publishers, announce.NewKafkaPublisher(writer))
		log.Printf("kafka announcements enabled -> %s (topic %s)", strings.Join(cfg.KafkaBrokers, ","), cfg.RosterTopic)
	}
	if cfg.WebhookURL != "" {
		publishers = append(publishers, announce.NewWebhookPublisher(cfg.WebhookURL, cfg.WebhookToken, cfg.WebhookTimeout))
		log.Printf("webhook announcements enabled -> %s", cfg.WebhookURL)
	}

	if len(publishers) == 0 {
		log.Printf("no announcement sinks configured, roster events disabled")
		return announce.Noop{}, nil, cleanup
	}

	dispatcher := announce.NewDispatcher(cfg.AnnounceQueueSize, publishers)
	return dispatcher, dispatcher, cleanup
}

// seedRosterGauges publishes the initial roster sizes so the gauges are
// populated before the first mutation.
func seedRosterGauges(registry domain.Registry) {
	activities, err := registry.Snapshot(context.Background())
	if err != nil {
		return
	}
	for name, activity := range activities {
		observability.RecordRosterSize(name, len(activity.Participants))
	}
}
