package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

func newRouter(store *Store, fetcher *Fetcher) *mux.Router {
	r := mux.NewRouter()

	// Define routes
	r.HandleFunc("/hello", helloHandler).Methods(http.MethodGet)
	r.HandleFunc("/list", getAllJokes(store)).Methods(http.MethodGet)      // list all jokes
	r.HandleFunc("/joke/{id}", getJokeByID(store)).Methods(http.MethodGet) // get joke by ID
	r.HandleFunc("/rand", getRandJoke(store)).Methods(http.MethodGet)      // get a random joke
	r.HandleFunc("/fetch", fetchJoke(store, fetcher)).Methods(http.MethodPost)

	return r
}

func helloHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Hello, world!")
}

func getJokeByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		joke, err := store.Get(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stored(id, joke))
	}
}

func getAllJokes(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jokes, err := store.All()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, jokes)
	}
}

// Get a random joke
func getRandJoke(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		joke, err := store.Random()
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, joke)
	}
}

// fetchJoke pulls one joke from upstream and stores it.
func fetchJoke(store *Store, fetcher *Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		joke, err := fetcher.Fetch(r.Context())
		if err != nil {
			log.Printf("fetch: %v", err)
			msg := "Upstream request failed"
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				msg = decodeErrorMessage
			}
			writeError(w, http.StatusBadGateway, msg)
			return
		}
		id, err := store.Put(joke)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored(id, joke))
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrJokeNotFound) {
		writeError(w, http.StatusNotFound, "Joke not available")
		return
	}
	log.Printf("store: %v", err)
	writeError(w, http.StatusInternalServerError, "Joke store unavailable")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, NoJoke{
		Status:  strconv.Itoa(status),
		Error:   http.StatusText(status),
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func waitForShutdown(srv *http.Server) {
	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive our signal.
	<-interruptChan

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	log.Println("Shutting down")
}
