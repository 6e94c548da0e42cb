package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-redis/redis"
)

func main() {
	cfg := loadConfig()
	fetcher := NewFetcher(cfg.Endpoint, cfg.Timeout)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve(cfg, fetcher)
		return
	}

	runFetch(context.Background(), os.Stdout, fetcher)
}

func serve(cfg Config, fetcher *Fetcher) {
	// Define new redis client
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := NewStore(client)

	// Check connection errors
	if err := store.Ping(); err != nil {
		log.Fatal(err)
	}

	srv := newServer(cfg.ServerAddr, newRouter(store, fetcher))

	// Start Server
	go func() {
		log.Printf("Starting Server on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful Shutdown
	waitForShutdown(srv)
	if err := client.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
