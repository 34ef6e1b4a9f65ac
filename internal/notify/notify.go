// Package notify wraps the OS-native notification and file-opening shims
// behind narrow interfaces so the workflow never depends on the platform.
package notify

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
)

// Urgency of a user-facing message.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Notifier delivers a user-facing message.
type Notifier interface {
	Notify(subject, body string, urgency Urgency) error
}

// Opener opens a file or folder with the platform default application.
type Opener interface {
	OpenPath(path string) error
}

// Desktop shells out to the platform notification and opener commands.
type Desktop struct{}

func NewDesktop() *Desktop { return &Desktop{} }

func (d *Desktop) Notify(subject, body string, urgency Urgency) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, subject)
		cmd = exec.Command("osascript", "-e", script)
	case "windows":
		cmd = exec.Command("msg", "*", subject+": "+body)
	default:
		cmd = exec.Command("notify-send", "-u", string(urgency), subject, body)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (d *Desktop) OpenPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// Log writes notifications to the process log. Used when no desktop is
// reachable and in tests.
type Log struct{}

func NewLog() *Log { return &Log{} }

func (l *Log) Notify(subject, body string, urgency Urgency) error {
	log.Printf("notification urgency=%s subject=%q body=%q", urgency, subject, body)
	return nil
}

func (l *Log) OpenPath(path string) error {
	log.Printf("open path=%q", path)
	return nil
}
