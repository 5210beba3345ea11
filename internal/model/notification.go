// Package model defines the core data structures for notica.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// Urgency levels matching freedesktop spec.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// UrgencyNames maps urgency levels to human-readable names.
var UrgencyNames = map[int]string{
	UrgencyLow:      "low",
	UrgencyNormal:   "normal",
	UrgencyCritical: "critical",
}

// Notification is a single notification as presented by the daemon.
type Notification struct {
	// Daemon metadata
	NoticaID   string `json:"notica_id"`
	ReceivedAt int64  `json:"received_at"`

	// Freedesktop standard fields
	ID            uint32 `json:"id"`
	AppName       string `json:"app_name"`
	Summary       string `json:"summary"`
	Body          string `json:"body"`
	Timestamp     int64  `json:"timestamp"`
	ExpireTimeout int    `json:"expire_timeout,omitempty"` // ms, -1 = server default, 0 = never

	// Urgency
	Urgency     int    `json:"urgency"`
	UrgencyName string `json:"urgency_name"`

	// Optional fields
	Category string `json:"category,omitempty"`
	IconPath string `json:"icon_path,omitempty"`

	// D-Bus extensions
	Actions      []Action `json:"actions,omitempty"`
	ImageData    []byte   `json:"image_data,omitempty"`
	SoundFile    string   `json:"sound_file,omitempty"`
	SoundName    string   `json:"sound_name,omitempty"`
	DesktopEntry string   `json:"desktop_entry,omitempty"`
	Resident     bool     `json:"resident,omitempty"`
	Transient    bool     `json:"transient,omitempty"`
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Validation errors.
var (
	ErrEmptyNoticaID    = errors.New("notica_id cannot be empty")
	ErrEmptyAppName     = errors.New("app_name cannot be empty")
	ErrEmptySummary     = errors.New("summary cannot be empty")
	ErrInvalidUrgency   = errors.New("urgency must be 0, 1, or 2")
	ErrInvalidTimestamp = errors.New("timestamp must be greater than 0")
)

// NewNotification creates a new Notification with generated ULID and metadata.
func NewNotification() (*Notification, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	now := time.Now()
	return &Notification{
		NoticaID:    id.String(),
		ReceivedAt:  now.Unix(),
		Timestamp:   now.Unix(),
		Urgency:     UrgencyNormal,
		UrgencyName: UrgencyNames[UrgencyNormal],
	}, nil
}

// Validate checks that the notification has all required fields.
func (n *Notification) Validate() error {
	if n.NoticaID == "" {
		return ErrEmptyNoticaID
	}
	if n.AppName == "" {
		return ErrEmptyAppName
	}
	if n.Summary == "" {
		return ErrEmptySummary
	}
	if n.Urgency < 0 || n.Urgency > 2 {
		return ErrInvalidUrgency
	}
	if n.Timestamp <= 0 {
		return ErrInvalidTimestamp
	}
	return nil
}

// SetUrgency sets the urgency level and its human-readable name.
func (n *Notification) SetUrgency(level int) {
	if level < 0 || level > 2 {
		level = UrgencyNormal
	}
	n.Urgency = level
	n.UrgencyName = UrgencyNames[level]
}

// BodyTruncated returns the body truncated to maxLen characters.
// If the body is longer, it is truncated and "..." is appended.
func (n *Notification) BodyTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and newlines to single spaces
	body := strings.Join(strings.Fields(n.Body), " ")

	if len(body) <= maxLen {
		return body
	}
	if maxLen <= 3 {
		return body[:maxLen]
	}
	return body[:maxLen-3] + "..."
}

// DefaultAction returns the action invoked when the notification body
// itself is activated, if the sender supplied one.
func (n *Notification) DefaultAction() (Action, bool) {
	for _, a := range n.Actions {
		if a.Key == "default" {
			return a, true
		}
	}
	return Action{}, false
}

// StackKey returns a string key for stacking repeated notifications.
// Notifications with the same key (same app, summary, body) replace one
// another on screen instead of piling up.
func (n *Notification) StackKey() string {
	return fmt.Sprintf("%s:%s:%s", n.AppName, n.Summary, n.Body)
}

// TimestampTime returns the timestamp as a time.Time.
func (n *Notification) TimestampTime() time.Time {
	return time.Unix(n.Timestamp, 0)
}

// RelativeTime returns a human-readable relative time (e.g., "2 minutes ago").
func (n *Notification) RelativeTime() string {
	return humanize.Time(n.TimestampTime())
}

// Clone creates a deep copy of the notification.
func (n *Notification) Clone() *Notification {
	clone := *n
	if n.Actions != nil {
		clone.Actions = append([]Action(nil), n.Actions...)
	}
	if n.ImageData != nil {
		clone.ImageData = append([]byte(nil), n.ImageData...)
	}
	return &clone
}
