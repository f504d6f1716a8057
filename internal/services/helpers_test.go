package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := models.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func setupServiceTestStore(t *testing.T) *store.GormStore {
	t.Helper()
	return store.NewGormStore(setupServiceTestDB(t))
}

// faultyStore wraps a real store and can fail or block selected calls.
type faultyStore struct {
	store.EntityStore

	mu                sync.Mutex
	updateCompErr     error
	deleteCompErr     error
	deleteCompsErr    error
	listComponentsErr error
	blocked           map[string]chan struct{}
	entered           chan string
}

func newFaultyStore(inner store.EntityStore) *faultyStore {
	return &faultyStore{
		EntityStore: inner,
		blocked:     make(map[string]chan struct{}),
		entered:     make(chan string, 10),
	}
}

// block makes ListComponents(pageID) wait until the returned func is called.
func (f *faultyStore) block(pageID string) func() {
	ch := make(chan struct{})
	f.mu.Lock()
	f.blocked[pageID] = ch
	f.mu.Unlock()
	return func() { close(ch) }
}

func (f *faultyStore) ListComponents(ctx context.Context, pageID string) ([]models.Component, error) {
	f.mu.Lock()
	ch, blocked := f.blocked[pageID]
	err := f.listComponentsErr
	f.mu.Unlock()

	if blocked {
		f.entered <- pageID
		<-ch
	}
	if err != nil {
		return nil, err
	}
	return f.EntityStore.ListComponents(ctx, pageID)
}

func (f *faultyStore) UpdateComponent(ctx context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	err := f.updateCompErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.EntityStore.UpdateComponent(ctx, id, updates)
}

func (f *faultyStore) DeleteComponent(ctx context.Context, id string) error {
	f.mu.Lock()
	err := f.deleteCompErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.EntityStore.DeleteComponent(ctx, id)
}

func (f *faultyStore) DeleteComponentsByPage(ctx context.Context, pageID string) error {
	f.mu.Lock()
	err := f.deleteCompsErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.EntityStore.DeleteComponentsByPage(ctx, pageID)
}

// recordingNotifier collects published notifications.
type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recordingNotifier) Publish(userID string, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// newTestSession wires a session to a sync queue backed by a Persister on s.
func newTestSession(t *testing.T, s store.EntityStore, userID, projectID string) (*EditingSession, *SyncQueue, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	queue := NewSyncQueue()
	queue.SetProcessor(NewPersister(s, notifier).Process)
	session := NewEditingSession(userID, projectID, s, queue, notifier)
	if err := session.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return session, queue, notifier
}

func createTestProject(t *testing.T, s store.EntityStore, userID, name string) *models.Project {
	t.Helper()
	project, err := NewProjectService(s).Create(context.Background(), userID, &CreateProjectRequest{Name: name})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}
