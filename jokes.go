package main

import "errors"

// Joke is the record served by the upstream joke API. Both fields are required.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

func (j Joke) String() string {
	return j.Setup + " - " + j.Punchline
}

type StoredJoke struct {
	ID        string `json:"id"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

type StoredJokes []StoredJoke

type NoJoke struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

var ErrJokeNotFound = errors.New("joke not found")

// TransportError reports a failure before a decodable body was available.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a body that does not parse into a Joke.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
