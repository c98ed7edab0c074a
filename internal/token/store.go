package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists cached tokens keyed by credential cache key. Implementations
// decide the lifetime: in-memory stores last for the process, file stores
// survive restarts.
type Store interface {
	Get(key string) (Token, bool)
	Set(key string, tok Token) error
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]Token)}
}

func (s *MemoryStore) Get(key string) (Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[key]
	return tok, ok
}

func (s *MemoryStore) Set(key string, tok Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[key] = tok
	return nil
}

// FileStore persists one JSON file per cache key under a state directory,
// so tokens outlive process restarts.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed token store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating token dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(key string) (Token, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return Token{}, false
	}
	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, false
	}
	return tok, true
}

func (s *FileStore) Set(key string, tok Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	// Cache keys contain only [A-Za-z0-9_] by construction, but sanitize
	// anyway so a bad key cannot escape the state dir.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
