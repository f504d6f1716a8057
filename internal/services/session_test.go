package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/huangang/sitecraft/internal/export"
	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditingSession_OpenSelectsHomepage(t *testing.T) {
	s := setupServiceTestStore(t)
	project := createTestProject(t, s, "u1", "Demo")

	session, _, _ := newTestSession(t, s, "u1", project.ID)

	page := session.CurrentPage()
	require.NotNil(t, page)
	assert.Equal(t, "Accueil", page.Name)
	assert.Equal(t, "home", page.Slug)
	assert.Empty(t, session.Components())
	assert.Nil(t, session.Selected())
}

func TestEditingSession_DemoScenarioExportsDefaultHero(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")

	session, _, _ := newTestSession(t, s, "u1", project.ID)
	_, err := session.AddComponent(ctx, models.ComponentHero)
	require.NoError(t, err)

	result, err := NewExportService(s, export.NewEngine()).Export(ctx, project, export.FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "<h1>Bienvenue</h1>")
	assert.Equal(t, "demo.html", result.FileName)
}

func TestEditingSession_AddComponentAppends(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, _, _ := newTestSession(t, s, "u1", project.ID)

	fixed := time.UnixMilli(1700000000000)
	session.now = func() time.Time { return fixed }

	types := []string{"navbar", "hero", "text", "card", "footer"}
	for _, typ := range types {
		c, err := session.AddComponent(ctx, typ)
		require.NoError(t, err)
		assert.Equal(t, c.ID, session.Selected().ID, "new component is selected")
	}

	local := session.Components()
	require.Len(t, local, len(types))
	for i, c := range local {
		assert.Equal(t, i, c.OrderIndex)
		assert.Equal(t, types[i], c.ComponentType)
		assert.True(t, c.IsVisible)
	}
	require.NotNil(t, local[1].Name)
	assert.Equal(t, "hero-1700000000000", *local[1].Name)
	assert.Equal(t, "Bienvenue", local[1].Props["title"])
	assert.Equal(t, "80vh", local[1].Styles["minHeight"])

	stored, err := s.ListComponents(ctx, session.CurrentPage().ID)
	require.NoError(t, err)
	require.Len(t, stored, len(types))
	for i, c := range stored {
		assert.Equal(t, i, c.OrderIndex)
		assert.Equal(t, local[i].ID, c.ID)
	}
}

func TestEditingSession_AddComponentValidation(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, _, _ := newTestSession(t, s, "u1", project.ID)

	_, err := session.AddComponent(ctx, "carousel")
	assert.ErrorIs(t, err, ErrUnknownComponentType)

	stored, _ := s.ListComponents(ctx, session.CurrentPage().ID)
	assert.Empty(t, stored)

	empty := NewEditingSession("u1", "no-pages", s, NewSyncQueue(), nil)
	require.NoError(t, empty.Open(ctx))
	_, err = empty.AddComponent(ctx, "hero")
	assert.ErrorIs(t, err, ErrNoPageSelected)
}

func TestEditingSession_UpdateIsOptimisticAndPersisted(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, queue, notifier := newTestSession(t, s, "u1", project.ID)

	hero, err := session.AddComponent(ctx, "hero")
	require.NoError(t, err)

	props := hero.Props.Merge(models.JSONMap{"title": "Bonjour"})
	updated, err := session.UpdateComponent(ctx, hero.ID, &ComponentPatch{Props: props})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", updated.Props["title"])
	assert.Equal(t, "Commencer", updated.Props["cta"])
	assert.Equal(t, "Bonjour", session.Components()[0].Props["title"])

	queue.Wait()
	stored, _ := s.ListComponents(ctx, hero.PageID)
	require.Len(t, stored, 1)
	assert.Equal(t, "Bonjour", stored[0].Props["title"])
	assert.Empty(t, notifier.all())
}

func TestEditingSession_RapidUpdatesPersistLastWrite(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, queue, notifier := newTestSession(t, s, "u1", project.ID)

	hero, err := session.AddComponent(ctx, "hero")
	require.NoError(t, err)

	for round := 0; round < 5; round++ {
		var last string
		for i := 0; i < 30; i++ {
			last = fmt.Sprintf("r%d-v%d", round, i)
			_, err := session.UpdateComponent(ctx, hero.ID, &ComponentPatch{Props: models.JSONMap{"title": last}})
			require.NoError(t, err)
		}
		queue.Wait()

		stored, err := s.ListComponents(ctx, hero.PageID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, last, stored[0].Props["title"], "round %d", round)
		assert.Equal(t, last, session.Components()[0].Props["title"])
	}
	assert.Empty(t, notifier.all())
}

func TestEditingSession_UpdateThenDeletePersistsInOrder(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, queue, notifier := newTestSession(t, s, "u1", project.ID)

	for i := 0; i < 10; i++ {
		text, err := session.AddComponent(ctx, "text")
		require.NoError(t, err)
		_, err = session.UpdateComponent(ctx, text.ID, &ComponentPatch{Props: models.JSONMap{"content": "bye"}})
		require.NoError(t, err)
		require.NoError(t, session.DeleteComponent(ctx, text.ID))
	}
	queue.Wait()

	stored, err := s.ListComponents(ctx, session.CurrentPage().ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, notifier.all(), "no write reached the store after its delete")
}

func TestEditingSession_EmptyNameClearsName(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, queue, notifier := newTestSession(t, s, "u1", project.ID)

	text, err := session.AddComponent(ctx, "text")
	require.NoError(t, err)
	require.NotNil(t, text.Name)

	empty := ""
	updated, err := session.UpdateComponent(ctx, text.ID, &ComponentPatch{Name: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Name)

	queue.Wait()
	stored, err := s.ListComponents(ctx, text.PageID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].Name)
	assert.Empty(t, notifier.all())
}

func TestEditingSession_FailedUpdateKeepsLocalPatchAndNotifies(t *testing.T) {
	inner := setupServiceTestStore(t)
	faulty := newFaultyStore(inner)
	ctx := context.Background()
	project := createTestProject(t, inner, "u1", "Demo")
	session, queue, notifier := newTestSession(t, faulty, "u1", project.ID)

	text, err := session.AddComponent(ctx, "text")
	require.NoError(t, err)

	faulty.updateCompErr = errors.New("network unreachable")
	name := "intro"
	_, err = session.UpdateComponent(ctx, text.ID, &ComponentPatch{Name: &name})
	require.NoError(t, err, "update returns before persistence")

	queue.Wait()

	local := session.Components()
	require.Len(t, local, 1)
	require.NotNil(t, local[0].Name)
	assert.Equal(t, "intro", *local[0].Name, "no rollback")

	stored, _ := inner.ListComponents(ctx, text.PageID)
	require.Len(t, stored, 1)
	assert.NotEqual(t, "intro", *stored[0].Name)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, NotifyError, sent[0].Level)
	assert.Equal(t, "component.update", sent[0].Action)
	assert.Equal(t, text.ID, sent[0].ComponentID)
}

func TestEditingSession_UpdateValidation(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, _, _ := newTestSession(t, s, "u1", project.ID)

	first, _ := session.AddComponent(ctx, "section")
	second, _ := session.AddComponent(ctx, "text")

	_, err := session.UpdateComponent(ctx, second.ID, &ComponentPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	bogus := "carousel"
	_, err = session.UpdateComponent(ctx, second.ID, &ComponentPatch{ComponentType: &bogus})
	assert.ErrorIs(t, err, ErrUnknownComponentType)

	missing := "not-on-this-page"
	_, err = session.UpdateComponent(ctx, second.ID, &ComponentPatch{ParentID: &missing})
	assert.ErrorIs(t, err, ErrInvalidParent)

	self := second.ID
	_, err = session.UpdateComponent(ctx, second.ID, &ComponentPatch{ParentID: &self})
	assert.ErrorIs(t, err, ErrInvalidParent)

	parent := first.ID
	updated, err := session.UpdateComponent(ctx, second.ID, &ComponentPatch{ParentID: &parent})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, first.ID, *updated.ParentID)

	title := "x"
	_, err = session.UpdateComponent(ctx, "unknown-id", &ComponentPatch{Name: &title})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEditingSession_DeleteComponent(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, queue, _ := newTestSession(t, s, "u1", project.ID)

	a, _ := session.AddComponent(ctx, "navbar")
	b, _ := session.AddComponent(ctx, "hero")
	require.Equal(t, b.ID, session.Selected().ID)

	require.NoError(t, session.DeleteComponent(ctx, b.ID))
	assert.Nil(t, session.Selected(), "deleting the selected component clears the selection")
	local := session.Components()
	require.Len(t, local, 1)
	assert.Equal(t, a.ID, local[0].ID)

	require.NoError(t, session.SelectComponent(a.ID))
	assert.Equal(t, a.ID, session.Selected().ID)
	session.ClearSelection()
	assert.Nil(t, session.Selected())

	assert.ErrorIs(t, session.DeleteComponent(ctx, b.ID), store.ErrNotFound)
	assert.ErrorIs(t, session.SelectComponent(b.ID), store.ErrNotFound)

	queue.Wait()
	stored, _ := s.ListComponents(ctx, a.PageID)
	require.Len(t, stored, 1)
	assert.Equal(t, a.ID, stored[0].ID)
}

func TestEditingSession_StaleLoadIsDiscarded(t *testing.T) {
	inner := setupServiceTestStore(t)
	faulty := newFaultyStore(inner)
	ctx := context.Background()
	project := createTestProject(t, inner, "u1", "Demo")
	session, _, _ := newTestSession(t, faulty, "u1", project.ID)

	slow, err := session.CreatePage(ctx, &CreatePageRequest{Name: "Slow"})
	require.NoError(t, err)
	_, err = session.AddComponent(ctx, "card")
	require.NoError(t, err)

	fast, err := session.CreatePage(ctx, &CreatePageRequest{Name: "Fast"})
	require.NoError(t, err)
	_, err = session.AddComponent(ctx, "footer")
	require.NoError(t, err)

	release := faulty.block(slow.ID)
	done := make(chan error, 1)
	go func() {
		done <- session.SelectPage(ctx, slow.ID)
	}()
	require.Equal(t, slow.ID, <-faulty.entered)

	require.NoError(t, session.SelectPage(ctx, fast.ID))
	release()

	assert.ErrorIs(t, <-done, ErrStaleLoad)
	assert.Equal(t, fast.ID, session.CurrentPage().ID)
	comps := session.Components()
	require.Len(t, comps, 1)
	assert.Equal(t, "footer", comps[0].ComponentType)
}

func TestEditingSession_FailedSelectPageKeepsPreviousPage(t *testing.T) {
	inner := setupServiceTestStore(t)
	faulty := newFaultyStore(inner)
	ctx := context.Background()
	project := createTestProject(t, inner, "u1", "Demo")
	session, _, _ := newTestSession(t, faulty, "u1", project.ID)
	home := session.CurrentPage()

	other, err := NewPageService(inner).Create(ctx, project.ID, &CreatePageRequest{Name: "Other"})
	require.NoError(t, err)
	for _, typ := range []string{"navbar", "hero", "footer"} {
		_, err := session.AddComponent(ctx, typ)
		require.NoError(t, err)
	}

	faulty.mu.Lock()
	faulty.listComponentsErr = errors.New("network down")
	faulty.mu.Unlock()
	require.Error(t, session.SelectPage(ctx, other.ID))

	require.NotNil(t, session.CurrentPage())
	assert.Equal(t, home.ID, session.CurrentPage().ID, "previous page stays current")
	for _, c := range session.Components() {
		assert.Equal(t, home.ID, c.PageID)
	}

	faulty.mu.Lock()
	faulty.listComponentsErr = nil
	faulty.mu.Unlock()
	require.NoError(t, session.SelectPage(ctx, other.ID))

	added, err := session.AddComponent(ctx, "hero")
	require.NoError(t, err)
	assert.Equal(t, other.ID, added.PageID)
	assert.Equal(t, 0, added.OrderIndex)
	require.Len(t, session.Components(), 1)
}

func TestEditingSession_PageOperations(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, _, _ := newTestSession(t, s, "u1", project.ID)
	home := session.CurrentPage()

	contact, err := session.CreatePage(ctx, &CreatePageRequest{Name: "Contact"})
	require.NoError(t, err)
	assert.False(t, contact.IsHomepage)
	assert.Equal(t, contact.ID, session.CurrentPage().ID, "a new page is selected")
	assert.Len(t, session.Pages(), 2)

	_, err = session.RenamePage(ctx, contact.ID, &RenamePageRequest{Name: "Nous joindre"})
	require.NoError(t, err)
	assert.Equal(t, "nous-joindre", session.CurrentPage().Slug)

	require.NoError(t, session.SetHomepage(ctx, contact.ID))
	assert.True(t, session.CurrentPage().IsHomepage)
	flagged := 0
	for _, p := range session.Pages() {
		if p.IsHomepage {
			flagged++
		}
	}
	assert.Equal(t, 1, flagged)

	for i := 0; i < 3; i++ {
		_, err := session.AddComponent(ctx, "text")
		require.NoError(t, err)
	}
	require.NoError(t, session.DeletePage(ctx, contact.ID))

	assert.Len(t, session.Pages(), 1)
	require.NotNil(t, session.CurrentPage())
	assert.Equal(t, home.ID, session.CurrentPage().ID, "first remaining page is selected")
	stored, _ := s.ListComponents(ctx, contact.ID)
	assert.Empty(t, stored)

	require.NoError(t, session.DeletePage(ctx, home.ID))
	assert.Nil(t, session.CurrentPage())
	assert.Empty(t, session.Components())
}

func TestEditingSession_State(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	session, _, _ := newTestSession(t, s, "u1", project.ID)

	c, _ := session.AddComponent(ctx, "button")
	state := session.State()

	assert.Equal(t, project.ID, state.ProjectID)
	require.NotNil(t, state.CurrentPage)
	require.Len(t, state.Components, 1)
	require.NotNil(t, state.SelectedID)
	assert.Equal(t, c.ID, *state.SelectedID)

	state.Components[0].ComponentType = "mutated"
	assert.Equal(t, "button", session.Components()[0].ComponentType)
}

func TestSessionManager(t *testing.T) {
	s := setupServiceTestStore(t)
	ctx := context.Background()
	project := createTestProject(t, s, "u1", "Demo")
	manager := NewSessionManager(s, NewSyncQueue(), nil)

	first, err := manager.Get(ctx, "u1", project.ID)
	require.NoError(t, err)
	second, err := manager.Get(ctx, "u1", project.ID)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, manager.Count())

	_, err = manager.Get(ctx, "u2", project.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	manager.CloseProject(project.ID)
	assert.Equal(t, 0, manager.Count())

	reopened, err := manager.Get(ctx, "u1", project.ID)
	require.NoError(t, err)
	assert.NotSame(t, first, reopened)
	manager.Close("u1", project.ID)
	assert.Equal(t, 0, manager.Count())
}
