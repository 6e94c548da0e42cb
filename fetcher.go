package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://official-joke-api.appspot.com/jokes/random"

const (
	startMessage       = "Starting request to fetch a random joke..."
	completedMessage   = "Request completed"
	decodeErrorMessage = "Error decoding JSON"
)

// Callback receives the outcome of one fetch. err is a *TransportError or a *DecodeError.
type Callback func(joke Joke, err error)

// Fetcher performs single GET exchanges against a joke endpoint.
type Fetcher struct {
	endpoint   string
	httpClient *http.Client
}

// NewFetcher returns a Fetcher for endpoint. A zero timeout keeps the transport default.
func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchAsync dispatches the request and returns immediately. cb is invoked exactly
// once, after which the returned channel is closed.
func (f *Fetcher) FetchAsync(ctx context.Context, cb Callback) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		cb(f.fetch(ctx))
	}()
	return done
}

func (f *Fetcher) Fetch(ctx context.Context) (Joke, error) {
	var (
		joke Joke
		err  error
	)
	<-f.FetchAsync(ctx, func(j Joke, e error) {
		joke, err = j, e
	})
	return joke, err
}

func (f *Fetcher) fetch(ctx context.Context) (Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return Joke{}, &TransportError{Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Joke{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Joke{}, &TransportError{Err: fmt.Errorf("unexpected response status: %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Joke{}, &TransportError{Err: err}
	}
	return decodeJoke(body)
}

// Report prints one console line describing the outcome.
func Report(w io.Writer) Callback {
	return func(joke Joke, err error) {
		var transportErr *TransportError
		switch {
		case err == nil:
			fmt.Fprintln(w, joke)
		case errors.As(err, &transportErr):
			fmt.Fprintf(w, "Error fetching joke: %v\n", transportErr)
		default:
			fmt.Fprintln(w, decodeErrorMessage)
		}
	}
}

// runFetch performs the console flow and returns once the exchange has finished.
func runFetch(ctx context.Context, w io.Writer, f *Fetcher) {
	fmt.Fprintln(w, startMessage)
	<-f.FetchAsync(ctx, Report(w))
	fmt.Fprintln(w, completedMessage)
}
