package services

import (
	"context"
	"sync"

	"github.com/huangang/sitecraft/internal/store"
)

// SessionManager keeps one EditingSession per user and project.
type SessionManager struct {
	store    store.EntityStore
	projects *ProjectService
	queue    TaskQueue
	notifier Notifier

	mu       sync.Mutex
	sessions map[string]*EditingSession
}

func NewSessionManager(s store.EntityStore, queue TaskQueue, notifier Notifier) *SessionManager {
	return &SessionManager{
		store:    s,
		projects: NewProjectService(s),
		queue:    queue,
		notifier: notifier,
		sessions: make(map[string]*EditingSession),
	}
}

func sessionKey(userID, projectID string) string {
	return userID + "/" + projectID
}

// Get returns the user's session on a project they own, opening it on first
// use.
func (m *SessionManager) Get(ctx context.Context, userID, projectID string) (*EditingSession, error) {
	key := sessionKey(userID, projectID)

	m.mu.Lock()
	session, ok := m.sessions[key]
	m.mu.Unlock()
	if ok {
		return session, nil
	}

	if _, err := m.projects.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}

	session = NewEditingSession(userID, projectID, m.store, m.queue, m.notifier)
	if err := session.Open(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have opened the same session meanwhile.
	if existing, ok := m.sessions[key]; ok {
		return existing, nil
	}
	m.sessions[key] = session
	return session, nil
}

// Close drops the user's session on a project.
func (m *SessionManager) Close(userID, projectID string) {
	m.mu.Lock()
	delete(m.sessions, sessionKey(userID, projectID))
	m.mu.Unlock()
}

// CloseProject drops every session on a project, used after it is deleted.
func (m *SessionManager) CloseProject(projectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, s := range m.sessions {
		if s.projectID == projectID {
			delete(m.sessions, key)
		}
	}
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
