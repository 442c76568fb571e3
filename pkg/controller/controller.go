// Package controller holds client-side UI state for one session and keeps it
// synchronized with the server.
//
// Every mutating action issues its API call and then refetches the full task
// list, replacing the view model instead of merging optimistically. The
// displayed list therefore always matches server state after the round trip.
package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/pkg/apiclient"
)

// DefaultSetupPromptDelay is how long after profile load a fresh account
// waits before being nudged to finish profile setup.
const DefaultSetupPromptDelay = 2 * time.Second

// Controller drives the view model through a unidirectional cycle:
// action, API call, list refetch, full state replacement.
type Controller struct {
	api *apiclient.Client

	mu sync.Mutex
	vm ViewModel

	// identityName is the display name the identity provider would assign
	// by default; a profile still carrying it counts as not set up.
	identityName string

	promptDelay   time.Duration
	promptPending bool
	prompted      bool

	// OnSetupPrompt, when set, fires once the setup prompt becomes visible.
	OnSetupPrompt func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithIdentityName supplies the identity-provider default display name used
// for new-user detection.
func WithIdentityName(name string) Option {
	return func(c *Controller) { c.identityName = name }
}

// WithSetupPromptDelay overrides the delay before the setup prompt shows.
func WithSetupPromptDelay(d time.Duration) Option {
	return func(c *Controller) { c.promptDelay = d }
}

// New creates a controller bound to an API client.
func New(api *apiclient.Client, opts ...Option) *Controller {
	c := &Controller{
		api:         api,
		vm:          ViewModel{Filter: FilterAll, Tasks: []apiclient.Task{}},
		promptDelay: DefaultSetupPromptDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ViewModel returns a snapshot of the current UI state.
func (c *Controller) ViewModel() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vm
}

// refreshTasks refetches the task list and replaces it in the view model.
func (c *Controller) refreshTasks(ctx context.Context) error {
	c.mu.Lock()
	c.vm.Loading = true
	c.mu.Unlock()

	tasks, err := c.api.ListTasks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.vm.Loading = false
	if err != nil {
		// Prior state stays on screen when a refetch fails.
		return err
	}
	c.vm.Tasks = tasks
	return nil
}

// Load fetches the initial task list.
func (c *Controller) Load(ctx context.Context) error {
	return c.refreshTasks(ctx)
}

// SetFilter switches the visible slice of tasks.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vm.Filter = f
}

// SetNewTaskText updates the add-task input buffer.
func (c *Controller) SetNewTaskText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vm.NewTaskText = text
}

// AddTask creates a task from the new-task buffer, clears the buffer, and
// refetches the list.
func (c *Controller) AddTask(ctx context.Context) error {
	c.mu.Lock()
	title := strings.TrimSpace(c.vm.NewTaskText)
	c.mu.Unlock()
	if title == "" {
		return nil
	}

	if _, err := c.api.CreateTask(ctx, title); err != nil {
		return err
	}

	c.mu.Lock()
	c.vm.NewTaskText = ""
	c.mu.Unlock()
	return c.refreshTasks(ctx)
}

// ToggleTask flips a task's completion state.
func (c *Controller) ToggleTask(ctx context.Context, id string) error {
	c.mu.Lock()
	var target *apiclient.Task
	for i := range c.vm.Tasks {
		if c.vm.Tasks[i].ID == id {
			target = &c.vm.Tasks[i]
			break
		}
	}
	if target == nil {
		c.mu.Unlock()
		return nil
	}
	title, completed := target.Title, !target.Completed
	c.mu.Unlock()

	if _, err := c.api.UpdateTask(ctx, id, title, completed); err != nil {
		return err
	}
	return c.refreshTasks(ctx)
}

// BeginEdit puts one task row into the editing state, replacing any other
// row that was being edited.
func (c *Controller) BeginEdit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.vm.Tasks {
		if t.ID == id {
			c.vm.Edit = &EditBuffer{TaskID: t.ID, Title: t.Title, Completed: t.Completed}
			return
		}
	}
}

// SetEditText updates the edit buffer text.
func (c *Controller) SetEditText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vm.Edit != nil {
		c.vm.Edit.Title = text
	}
}

// SaveEdit persists the edit buffer and leaves the editing state.
func (c *Controller) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	edit := c.vm.Edit
	c.mu.Unlock()
	if edit == nil {
		return nil
	}

	if _, err := c.api.UpdateTask(ctx, edit.TaskID, edit.Title, edit.Completed); err != nil {
		return err
	}

	c.mu.Lock()
	c.vm.Edit = nil
	c.mu.Unlock()
	return c.refreshTasks(ctx)
}

// CancelEdit leaves the editing state without saving.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vm.Edit = nil
}

// DeleteTask removes a task and refetches the list.
func (c *Controller) DeleteTask(ctx context.Context, id string) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	return c.refreshTasks(ctx)
}

// LoadProfile fetches the profile and schedules a one-time setup prompt for
// accounts that still look untouched.
func (c *Controller) LoadProfile(ctx context.Context) error {
	profile, err := c.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.vm.Profile = profile
	schedule := c.needsSetupLocked() && !c.prompted
	if schedule {
		c.prompted = true
	}
	c.mu.Unlock()

	if schedule {
		time.AfterFunc(c.promptDelay, c.showSetupPrompt)
	}
	return nil
}

func (c *Controller) needsSetupLocked() bool {
	p := c.vm.Profile
	if p == nil || p.Bio != "" {
		return false
	}
	return p.DisplayName == "" || (c.identityName != "" && p.DisplayName == c.identityName)
}

func (c *Controller) showSetupPrompt() {
	c.mu.Lock()
	c.vm.ShowSetupPrompt = true
	fn := c.OnSetupPrompt
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// DismissSetupPrompt hides the setup prompt. It does not come back within a
// session.
func (c *Controller) DismissSetupPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vm.ShowSetupPrompt = false
}

// SaveProfile applies a profile patch and replaces the profile state with
// the server's response.
func (c *Controller) SaveProfile(ctx context.Context, patch apiclient.ProfilePatch) error {
	profile, err := c.api.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vm.Profile = profile
	return nil
}
