package controller

import "github.com/taskdeck/taskdeck/pkg/apiclient"

// Filter selects which tasks the presentation layer shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// EditBuffer is the in-progress edit of a single task row. At most one row
// is in the editing state at a time.
type EditBuffer struct {
	TaskID    string `json:"taskId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ViewModel is the complete, serializable UI state. It is replaced wholesale
// after every server round trip; nothing is merged incrementally.
type ViewModel struct {
	Tasks           []apiclient.Task   `json:"tasks"`
	Filter          Filter             `json:"filter"`
	NewTaskText     string             `json:"newTaskText"`
	Edit            *EditBuffer        `json:"edit"`
	Profile         *apiclient.Profile `json:"profile"`
	Loading         bool               `json:"loading"`
	ShowSetupPrompt bool               `json:"showSetupPrompt"`
}
