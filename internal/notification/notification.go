// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/zhubert/parley/internal/logger"
)

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Warn("Notification: Failed to send notification: %v", err)
	}
	return err
}

// ConfirmationRequested notifies that the backend is waiting on a decision,
// so the user notices even when the terminal is in the background.
func ConfirmationRequested(prompt string) error {
	return Send("Confirmation Required", prompt)
}

// ResponseReady notifies that a long-running turn finished.
func ResponseReady() error {
	return Send("Parley", "Response ready")
}
