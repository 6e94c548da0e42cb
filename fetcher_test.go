package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// Suite
type FetcherSuite struct {
	suite.Suite

	mtx    sync.Mutex
	body   string
	status int
	hits   int32
	server *httptest.Server
}

func (s *FetcherSuite) respond(status int, body string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.status, s.body = status, body
}

func (s *FetcherSuite) SetupTest() {
	s.respond(http.StatusOK, `{"setup":"Why did the chicken cross the road?","punchline":"To get to the other side."}`)
	atomic.StoreInt32(&s.hits, 0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.hits, 1)
		s.mtx.Lock()
		status, body := s.status, s.body
		s.mtx.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func (s *FetcherSuite) TearDownTest() {
	s.server.Close()
}

func TestRunFetcherSuite(t *testing.T) {
	suite.Run(t, new(FetcherSuite))
}

func (s *FetcherSuite) run(f *Fetcher) string {
	out := &bytes.Buffer{}
	finished := make(chan struct{})
	go func() {
		runFetch(context.Background(), out, f)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		s.FailNow("fetch flow did not complete")
	}
	return out.String()
}

// Tests
func (s *FetcherSuite) TestRunFetch_Success() {
	out := s.run(NewFetcher(s.server.URL, 0))

	s.Equal("Starting request to fetch a random joke...\n"+
		"Why did the chicken cross the road? - To get to the other side.\n"+
		"Request completed\n", out)
	s.EqualValues(1, atomic.LoadInt32(&s.hits))
}

func (s *FetcherSuite) TestRunFetch_DecodeError() {
	s.respond(http.StatusOK, `{}`)
	out := s.run(NewFetcher(s.server.URL, 0))

	s.Equal("Starting request to fetch a random joke...\n"+
		"Error decoding JSON\n"+
		"Request completed\n", out)
}

func (s *FetcherSuite) TestRunFetch_TransportError() {
	s.server.Close()
	out := s.run(NewFetcher(s.server.URL, 0))

	s.Contains(out, "\nError fetching joke: ")
	s.NotContains(out, decodeErrorMessage)
	s.Contains(out, "Request completed\n")
}

func (s *FetcherSuite) TestRunFetch_BadStatusSkipsDecode() {
	s.respond(http.StatusServiceUnavailable, `not json`)
	out := s.run(NewFetcher(s.server.URL, 0))

	s.Contains(out, "Error fetching joke: unexpected response status: 503 Service Unavailable\n")
	s.NotContains(out, decodeErrorMessage)
}

func (s *FetcherSuite) TestRunFetch_Idempotent() {
	f := NewFetcher(s.server.URL, 0)
	s.Equal(s.run(f), s.run(f))
}

func (s *FetcherSuite) TestFetchAsync_CallbackOnce() {
	cases := []func(){
		func() {},
		func() { s.respond(http.StatusOK, `{"setup":1}`) },
		func() { s.respond(http.StatusInternalServerError, ``) },
	}
	for _, prepare := range cases {
		prepare()
		var calls int32
		done := NewFetcher(s.server.URL, 0).FetchAsync(context.Background(), func(Joke, error) {
			atomic.AddInt32(&calls, 1)
		})
		<-done
		s.EqualValues(1, atomic.LoadInt32(&calls))
	}
}

func (s *FetcherSuite) TestFetchAsync_DoesNotBlockCaller() {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"setup":"a","punchline":"b"}`))
	}))
	defer slow.Close()

	var got Joke
	done := NewFetcher(slow.URL, 0).FetchAsync(context.Background(), func(j Joke, err error) {
		s.NoError(err)
		got = j
	})

	select {
	case <-done:
		s.Fail("completion signalled before the response arrived")
	default:
	}

	close(release)
	<-done
	s.Equal(Joke{Setup: "a", Punchline: "b"}, got)
}

func (s *FetcherSuite) TestFetch_ErrorTypes() {
	s.respond(http.StatusOK, `{"punchline":"b"}`)
	_, err := NewFetcher(s.server.URL, 0).Fetch(context.Background())
	var decodeErr *DecodeError
	s.True(errors.As(err, &decodeErr))

	s.server.Close()
	_, err = NewFetcher(s.server.URL, 0).Fetch(context.Background())
	var transportErr *TransportError
	s.True(errors.As(err, &transportErr))
}

func (s *FetcherSuite) TestFetch_Timeout() {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)

	_, err := NewFetcher(slow.URL, 50*time.Millisecond).Fetch(context.Background())
	var transportErr *TransportError
	s.True(errors.As(err, &transportErr))
}
