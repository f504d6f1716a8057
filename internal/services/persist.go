package services

import (
	"context"
	"fmt"

	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/logger"
)

// Persister applies queued component writes to the store. A failed write is
// reported once to the user and recorded; the editor keeps its local state.
type Persister struct {
	store    store.EntityStore
	notifier Notifier
}

func NewPersister(s store.EntityStore, notifier Notifier) *Persister {
	return &Persister{store: s, notifier: notifier}
}

// Process is the TaskQueue processor.
func (p *Persister) Process(ctx context.Context, task *PersistTask) error {
	var err error
	var action, message string

	switch task.Op {
	case PersistUpdate:
		action, message = "component.update", "Erreur lors de la mise à jour"
		if task.Patch.IsEmpty() {
			return nil
		}
		err = p.store.UpdateComponent(ctx, task.ComponentID, task.Patch.Updates())
	case PersistDelete:
		action, message = "component.delete", "Erreur lors de la suppression"
		err = p.store.DeleteComponent(ctx, task.ComponentID)
	default:
		return fmt.Errorf("unknown persist op %q", task.Op)
	}

	if err == nil {
		return nil
	}

	log := logger.Component("persister")
	log.Error().Err(err).
		Str("op", task.Op).
		Str("component_id", task.ComponentID).
		Str("user_id", task.UserID).
		Msg("component write failed")
	LogError("editor", action, err.Error(), task.UserID, "", "", map[string]string{
		"project_id":   task.ProjectID,
		"page_id":      task.PageID,
		"component_id": task.ComponentID,
	})
	if p.notifier != nil {
		p.notifier.Publish(task.UserID, Notification{
			Level:       NotifyError,
			Action:      action,
			Message:     message,
			ProjectID:   task.ProjectID,
			ComponentID: task.ComponentID,
		})
	}
	return err
}
