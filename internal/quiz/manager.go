package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired
var ErrSessionNotFound = errors.New("quiz session not found")

// Manager owns the in-memory quiz sessions. Abandoned sessions are dropped
// after the idle TTL without persisting anything.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	speaker Speaker
	ttl     time.Duration
	logger  *zap.Logger

	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewManager creates a session manager with the given idle TTL
func NewManager(speaker Speaker, ttl time.Duration, logger *zap.Logger) *Manager {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	return &Manager{
		sessions: make(map[string]*Session),
		speaker:  speaker,
		ttl:      ttl,
		logger:   logger,
		ticker:   time.NewTicker(time.Minute),
		stopChan: make(chan struct{}),
	}
}

// Start starts the expiry loop
func (m *Manager) Start() {
	go m.run()
}

// Stop stops the expiry loop
func (m *Manager) Stop() {
	m.ticker.Stop()
	close(m.stopChan)
}

// run drops idle sessions until stopped
func (m *Manager) run() {
	for {
		select {
		case <-m.ticker.C:
			m.expire()
		case <-m.stopChan:
			return
		}
	}
}

// expire removes sessions idle longer than the TTL
func (m *Manager) expire() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.touched().Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Info("expired idle quiz session",
				zap.String("session_id", id),
				zap.Int("user_id", s.UserID()),
			)
		}
	}
}

// Create builds a new session over the given pool and registers it
func (m *Manager) Create(userID int, modeTag models.QuizMode, pool []models.Word) (*Session, error) {
	mode, err := ModeFor(modeTag, m.speaker)
	if err != nil {
		return nil, err
	}

	session := NewSession(uuid.New().String(), userID, mode, pool)

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns the session with the given ID owned by the given user
func (m *Manager) Get(id string, userID int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok || session.UserID() != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove drops a session, discarding any unfinished state
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
