package main

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bodul/arcade3d/crossword"
)

// Store holds all crossword and Connect-Four sessions in memory.
type Store struct {
	mu         sync.RWMutex
	crosswords map[string]*CrosswordSession
	games      map[string]*ConnectFourSession
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		crosswords: make(map[string]*CrosswordSession),
		games:      make(map[string]*ConnectFourSession),
	}
}

// SaveCrossword registers a generated puzzle and returns its session.
func (s *Store) SaveCrossword(p *crossword.Puzzle, difficulty string) *CrosswordSession {
	cs := &CrosswordSession{
		ID:         generateID(),
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
		puzzle:     p,
	}

	s.mu.Lock()
	s.crosswords[cs.ID] = cs
	s.mu.Unlock()

	return cs
}

// GetCrossword returns a session by ID, or nil if not found.
func (s *Store) GetCrossword(id string) *CrosswordSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.crosswords[id]
}

// ListCrosswords returns all crossword sessions, most recent first.
func (s *Store) ListCrosswords() []*CrosswordSession {
	s.mu.RLock()
	list := make([]*CrosswordSession, 0, len(s.crosswords))
	for _, cs := range s.crosswords {
		list = append(list, cs)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// CreateConnectFour starts a match with one seat per pseudo. Empty
// pseudos get a default name.
func (s *Store) CreateConnectFour(size int, pseudos []string) (*ConnectFourSession, error) {
	g, err := newConnectFourSession(size, pseudos)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.games[g.ID] = g
	s.mu.Unlock()

	return g, nil
}

// GetConnectFour returns a match by ID, or nil if not found.
func (s *Store) GetConnectFour(id string) *ConnectFourSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[id]
}

func generateID() string {
	return uuid.NewString()
}
