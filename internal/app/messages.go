package app

import (
	"time"

	"github.com/j-veylop/covid-dashboard/internal/dashboard"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// BundleLoadedMsg carries the result of a bundle build.
type BundleLoadedMsg struct {
	Bundle   *dashboard.Bundle
	Err      error
	Duration time.Duration
}

// ReloadMsg asks the model to rebuild the bundle from disk.
type ReloadMsg struct{}

// AddNotificationMsg adds a notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg removes a notification by ID.
type RemoveNotificationMsg struct {
	ID string
}

// TabSwitchMsg switches the active tab.
type TabSwitchMsg struct {
	Tab int
}

// ToggleHelpMsg toggles the help overlay.
type ToggleHelpMsg struct{}
