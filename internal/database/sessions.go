package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"
)

// SessionStore, oturum durumunu oturum id'sine göre saklar. Bilinmeyen bir id
// için boş bir durum döner.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Put(ctx context.Context, sessionID string, state *models.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

func decodeSession(payload []byte) (*models.SessionState, error) {
	state := models.NewSessionState()
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

// MemorySessionStore, oturumları JSON olarak bellekte tutar. Her okuma yeni
// bir kopya döndürür; çağıran Put etmeden değişiklik görünmez.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemorySessionStore, boş bir bellek deposu oluşturur
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string][]byte{}}
}

func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.SessionState, error) {
	m.mu.RLock()
	payload, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return models.NewSessionState(), nil
	}
	return decodeSession(payload)
}

func (m *MemorySessionStore) Put(_ context.Context, sessionID string, state *models.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	m.mu.Lock()
	m.sessions[sessionID] = payload
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return nil
}

// SQLSessionStore, oturumları sessions tablosunda JSON olarak saklar
type SQLSessionStore struct {
	db *SQLDatabase
}

// NewSQLSessionStore, veritabanı üzerinde bir oturum deposu oluşturur
func NewSQLSessionStore(db *SQLDatabase) *SQLSessionStore {
	return &SQLSessionStore{db: db}
}

func (s *SQLSessionStore) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	var payload string
	query := s.db.dialect.rebind(`SELECT payload FROM sessions WHERE id = ?`)
	err := s.db.db.QueryRowContext(ctx, query, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewSessionState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeSession([]byte(payload))
}

func (s *SQLSessionStore) Put(ctx context.Context, sessionID string, state *models.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	query := s.db.dialect.rebind(`INSERT INTO sessions (id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	if _, err := s.db.db.ExecContext(ctx, query, sessionID, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (s *SQLSessionStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.db.ExecContext(ctx, s.db.dialect.rebind(`DELETE FROM sessions WHERE id = ?`), sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
