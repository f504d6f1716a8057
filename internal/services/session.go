package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/registry"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/pkg/logger"
)

// SessionState is a copy of an editing session's state.
type SessionState struct {
	ProjectID   string             `json:"project_id"`
	Pages       []models.Page      `json:"pages"`
	CurrentPage *models.Page       `json:"current_page"`
	Components  []models.Component `json:"components"`
	SelectedID  *string            `json:"selected_id"`
}

// EditingSession holds one user's working state on one project: the page
// being edited, its component list and the selected component.
//
// Component additions are awaited. Updates and deletions are applied locally
// first and persisted through the TaskQueue; when persistence fails the user
// is notified and the local state is left as is. The mutex is never held
// across a store call.
type EditingSession struct {
	userID    string
	projectID string
	store     store.EntityStore
	pages     *PageService
	queue     TaskQueue
	notifier  Notifier
	now       func() time.Time

	mu          sync.Mutex
	pageList    []models.Page
	currentPage *models.Page
	components  []models.Component
	selectedID  string
	loadSeq     uint64
}

func NewEditingSession(userID, projectID string, s store.EntityStore, queue TaskQueue, notifier Notifier) *EditingSession {
	return &EditingSession{
		userID:    userID,
		projectID: projectID,
		store:     s,
		pages:     NewPageService(s),
		queue:     queue,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Open loads the project's pages and selects the homepage, or the first page
// when none is flagged.
func (s *EditingSession) Open(ctx context.Context) error {
	pages, err := s.pages.List(ctx, s.projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pageList = pages
	s.mu.Unlock()

	var home *models.Page
	for i := range pages {
		if pages[i].IsHomepage {
			home = &pages[i]
			break
		}
	}
	if home == nil && len(pages) > 0 {
		home = &pages[0]
	}
	if home == nil {
		return nil
	}
	return s.SelectPage(ctx, home.ID)
}

// SelectPage makes pageID current and replaces the component list with a
// fresh fetch ordered by order_index. The selection is cleared. On a fetch
// failure the previous page stays current. If another SelectPage started
// while this one was fetching, the result is discarded and ErrStaleLoad
// returned.
func (s *EditingSession) SelectPage(ctx context.Context, pageID string) error {
	s.mu.Lock()
	page := s.findPageLocked(pageID)
	s.mu.Unlock()

	if page == nil {
		fetched, err := s.pages.Get(ctx, s.projectID, pageID)
		if err != nil {
			return err
		}
		page = fetched
	}

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	components, err := s.store.ListComponents(ctx, pageID)
	if err != nil {
		logger.Warn().Err(err).Str("page_id", pageID).Msg("[EditingSession] failed to load components")
		return err
	}
	if components == nil {
		components = []models.Component{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		return ErrStaleLoad
	}
	// The page and its list are only ever committed together.
	current := *page
	s.currentPage = &current
	s.components = components
	s.selectedID = ""
	return nil
}

// AddComponent creates a component of the given type on the current page with
// registry defaults and appends it. Its order_index is the list length read
// before the insert; concurrent additions may therefore share an index.
func (s *EditingSession) AddComponent(ctx context.Context, componentType string) (*models.Component, error) {
	if !registry.IsKnownType(componentType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, componentType)
	}

	s.mu.Lock()
	if s.currentPage == nil {
		s.mu.Unlock()
		return nil, ErrNoPageSelected
	}
	pageID := s.currentPage.ID
	seq := s.loadSeq
	orderIndex := len(s.components)
	s.mu.Unlock()

	props, styles, content := registry.Defaults(componentType)
	name := fmt.Sprintf("%s-%d", componentType, s.now().UnixMilli())
	component := &models.Component{
		PageID:        pageID,
		ComponentType: componentType,
		Name:          &name,
		Props:         props,
		Styles:        styles,
		Content:       content,
		OrderIndex:    orderIndex,
		IsVisible:     true,
	}
	if err := s.store.CreateComponent(ctx, component); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The user may have switched pages while the insert was in flight.
	if seq == s.loadSeq && s.currentPage != nil && s.currentPage.ID == pageID {
		s.components = append(s.components, *component)
		s.selectedID = component.ID
	}
	out := *component
	return &out, nil
}

// UpdateComponent merges patch into the in-memory component and queues the
// write. It returns the updated local copy without waiting for the store.
func (s *EditingSession) UpdateComponent(ctx context.Context, componentID string, patch *ComponentPatch) (*models.Component, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if patch.ComponentType != nil && !registry.IsKnownType(*patch.ComponentType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, *patch.ComponentType)
	}

	s.mu.Lock()
	idx := s.indexLocked(componentID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, store.ErrNotFound
	}
	if patch.ParentID != nil && *patch.ParentID != "" {
		if *patch.ParentID == componentID || s.indexLocked(*patch.ParentID) < 0 {
			s.mu.Unlock()
			return nil, ErrInvalidParent
		}
	}
	patch.Apply(&s.components[idx])
	updated := s.components[idx]
	task := &PersistTask{
		Op:          PersistUpdate,
		UserID:      s.userID,
		ProjectID:   s.projectID,
		PageID:      updated.PageID,
		ComponentID: componentID,
		Patch:       patch,
	}
	s.mu.Unlock()

	s.enqueue(task)
	return &updated, nil
}

// DeleteComponent removes the component locally, clears the selection if it
// pointed at it and queues the delete.
func (s *EditingSession) DeleteComponent(ctx context.Context, componentID string) error {
	s.mu.Lock()
	idx := s.indexLocked(componentID)
	if idx < 0 {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	pageID := s.components[idx].PageID
	s.components = append(s.components[:idx:idx], s.components[idx+1:]...)
	if s.selectedID == componentID {
		s.selectedID = ""
	}
	s.mu.Unlock()

	s.enqueue(&PersistTask{
		Op:          PersistDelete,
		UserID:      s.userID,
		ProjectID:   s.projectID,
		PageID:      pageID,
		ComponentID: componentID,
	})
	return nil
}

func (s *EditingSession) enqueue(task *PersistTask) {
	if err := s.queue.Enqueue(task); err != nil {
		logger.Error().Err(err).Str("component_id", task.ComponentID).Msg("[EditingSession] failed to enqueue write")
		if s.notifier != nil {
			s.notifier.Publish(s.userID, Notification{
				Level:       NotifyError,
				Action:      "component." + task.Op,
				Message:     "Erreur lors de la sauvegarde",
				ProjectID:   s.projectID,
				ComponentID: task.ComponentID,
			})
		}
	}
}

// SelectComponent marks a component of the current page as selected.
func (s *EditingSession) SelectComponent(componentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(componentID) < 0 {
		return store.ErrNotFound
	}
	s.selectedID = componentID
	return nil
}

func (s *EditingSession) ClearSelection() {
	s.mu.Lock()
	s.selectedID = ""
	s.mu.Unlock()
}

// CreatePage adds a page to the project and selects it.
func (s *EditingSession) CreatePage(ctx context.Context, req *CreatePageRequest) (*models.Page, error) {
	page, err := s.pages.Create(ctx, s.projectID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pageList = append(s.pageList, *page)
	s.mu.Unlock()

	if err := s.SelectPage(ctx, page.ID); err != nil && !errors.Is(err, ErrStaleLoad) {
		return page, err
	}
	return page, nil
}

// RenamePage renames a page and keeps the current page in sync.
func (s *EditingSession) RenamePage(ctx context.Context, pageID string, req *RenamePageRequest) (*models.Page, error) {
	page, err := s.pages.Rename(ctx, s.projectID, pageID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pageList {
		if s.pageList[i].ID == pageID {
			s.pageList[i].Name = page.Name
			s.pageList[i].Slug = page.Slug
		}
	}
	if s.currentPage != nil && s.currentPage.ID == pageID {
		s.currentPage.Name = page.Name
		s.currentPage.Slug = page.Slug
	}
	return page, nil
}

// DeletePage deletes a page with its components. When it was the current
// page the first remaining page is selected.
func (s *EditingSession) DeletePage(ctx context.Context, pageID string) error {
	if err := s.pages.Delete(ctx, s.projectID, pageID); err != nil {
		return err
	}

	s.mu.Lock()
	remaining := make([]models.Page, 0, len(s.pageList))
	for _, p := range s.pageList {
		if p.ID != pageID {
			remaining = append(remaining, p)
		}
	}
	s.pageList = remaining
	wasCurrent := s.currentPage != nil && s.currentPage.ID == pageID
	if wasCurrent {
		s.loadSeq++
		s.currentPage = nil
		s.components = nil
		s.selectedID = ""
	}
	s.mu.Unlock()

	if wasCurrent && len(remaining) > 0 {
		if err := s.SelectPage(ctx, remaining[0].ID); err != nil && !errors.Is(err, ErrStaleLoad) {
			return err
		}
	}
	return nil
}

// SetHomepage makes pageID the project's only homepage.
func (s *EditingSession) SetHomepage(ctx context.Context, pageID string) error {
	if err := s.pages.SetHomepage(ctx, s.projectID, pageID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pageList {
		s.pageList[i].IsHomepage = s.pageList[i].ID == pageID
	}
	if s.currentPage != nil {
		s.currentPage.IsHomepage = s.currentPage.ID == pageID
	}
	return nil
}

// CurrentPage returns a copy of the page being edited, or nil.
func (s *EditingSession) CurrentPage() *models.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage == nil {
		return nil
	}
	p := *s.currentPage
	return &p
}

// Components returns a copy of the current component list.
func (s *EditingSession) Components() []models.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Component, len(s.components))
	copy(out, s.components)
	return out
}

// Selected returns a copy of the selected component, or nil.
func (s *EditingSession) Selected() *models.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(s.selectedID)
	if idx < 0 {
		return nil
	}
	c := s.components[idx]
	return &c
}

// Pages returns a copy of the project's page list as known to the session.
func (s *EditingSession) Pages() []models.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Page, len(s.pageList))
	copy(out, s.pageList)
	return out
}

func (s *EditingSession) State() *SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &SessionState{
		ProjectID:  s.projectID,
		Pages:      make([]models.Page, len(s.pageList)),
		Components: make([]models.Component, len(s.components)),
	}
	copy(state.Pages, s.pageList)
	copy(state.Components, s.components)
	if s.currentPage != nil {
		p := *s.currentPage
		state.CurrentPage = &p
	}
	if s.indexLocked(s.selectedID) >= 0 {
		id := s.selectedID
		state.SelectedID = &id
	}
	return state
}

func (s *EditingSession) findPageLocked(pageID string) *models.Page {
	for i := range s.pageList {
		if s.pageList[i].ID == pageID {
			p := s.pageList[i]
			return &p
		}
	}
	return nil
}

func (s *EditingSession) indexLocked(componentID string) int {
	if componentID == "" {
		return -1
	}
	for i := range s.components {
		if s.components[i].ID == componentID {
			return i
		}
	}
	return -1
}
