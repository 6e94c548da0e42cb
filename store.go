package main

import (
	"sort"
	"strconv"

	"github.com/go-redis/redis"
)

const (
	jokeSeqKey = "jokes:seq"
	jokeSetKey = "jokes"
)

func jokeKey(id string) string {
	return "joke:" + id
}

// Store keeps jokes in Redis: one hash per joke plus a set of all ids.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Ping() error {
	return s.client.Ping().Err()
}

// Put saves j under a freshly allocated id. The id is allocated before the
// MULTI/EXEC block, so a failed transaction leaves a gap in the sequence.
func (s *Store) Put(j Joke) (string, error) {
	seq, err := s.client.Incr(jokeSeqKey).Result()
	if err != nil {
		return "", err
	}
	id := strconv.FormatInt(seq, 10)

	_, err = s.client.TxPipelined(func(pipe redis.Pipeliner) error {
		pipe.HMSet(jokeKey(id), map[string]interface{}{
			"setup":     j.Setup,
			"punchline": j.Punchline,
		})
		pipe.SAdd(jokeSetKey, id)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns ErrJokeNotFound for ids that Put could not have allocated.
func (s *Store) Get(id string) (Joke, error) {
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return Joke{}, ErrJokeNotFound
	}
	fields, err := s.client.HGetAll(jokeKey(id)).Result()
	if err != nil {
		return Joke{}, err
	}
	if len(fields) == 0 {
		return Joke{}, ErrJokeNotFound
	}
	return Joke{Setup: fields["setup"], Punchline: fields["punchline"]}, nil
}

func (s *Store) Random() (StoredJoke, error) {
	id, err := s.client.SRandMember(jokeSetKey).Result()
	if err == redis.Nil {
		return StoredJoke{}, ErrJokeNotFound
	}
	if err != nil {
		return StoredJoke{}, err
	}
	j, err := s.Get(id)
	if err != nil {
		return StoredJoke{}, err
	}
	return stored(id, j), nil
}

// All returns every joke ordered by id.
func (s *Store) All() (StoredJokes, error) {
	ids, err := s.client.SMembers(jokeSetKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(a, b int) bool {
		na, _ := strconv.Atoi(ids[a])
		nb, _ := strconv.Atoi(ids[b])
		return na < nb
	})

	jokes := make(StoredJokes, 0, len(ids))
	for _, id := range ids {
		j, err := s.Get(id)
		if err == ErrJokeNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		jokes = append(jokes, stored(id, j))
	}
	return jokes, nil
}

func stored(id string, j Joke) StoredJoke {
	return StoredJoke{ID: id, Setup: j.Setup, Punchline: j.Punchline}
}
