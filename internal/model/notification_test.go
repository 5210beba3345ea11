package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	n, err := NewNotification()
	require.NoError(t, err)

	assert.NotEmpty(t, n.NoticaID)
	assert.Greater(t, n.ReceivedAt, int64(0))
	assert.Equal(t, UrgencyNormal, n.Urgency)
	assert.Equal(t, "normal", n.UrgencyName)
}

func TestNotification_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Notification)
		wantErr error
	}{
		{
			name:    "valid notification",
			modify:  func(n *Notification) {},
			wantErr: nil,
		},
		{
			name: "empty notica_id",
			modify: func(n *Notification) {
				n.NoticaID = ""
			},
			wantErr: ErrEmptyNoticaID,
		},
		{
			name: "empty app_name",
			modify: func(n *Notification) {
				n.AppName = ""
			},
			wantErr: ErrEmptyAppName,
		},
		{
			name: "empty summary",
			modify: func(n *Notification) {
				n.Summary = ""
			},
			wantErr: ErrEmptySummary,
		},
		{
			name: "invalid urgency (negative)",
			modify: func(n *Notification) {
				n.Urgency = -1
			},
			wantErr: ErrInvalidUrgency,
		},
		{
			name: "invalid urgency (too high)",
			modify: func(n *Notification) {
				n.Urgency = 3
			},
			wantErr: ErrInvalidUrgency,
		},
		{
			name: "invalid timestamp",
			modify: func(n *Notification) {
				n.Timestamp = 0
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := validNotification()
			tt.modify(n)
			err := n.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotification_SetUrgency(t *testing.T) {
	tests := []struct {
		level       int
		wantUrgency int
		wantName    string
	}{
		{UrgencyLow, UrgencyLow, "low"},
		{UrgencyNormal, UrgencyNormal, "normal"},
		{UrgencyCritical, UrgencyCritical, "critical"},
		{-1, UrgencyNormal, "normal"}, // Invalid defaults to normal
		{5, UrgencyNormal, "normal"},  // Invalid defaults to normal
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			n := &Notification{}
			n.SetUrgency(tt.level)
			assert.Equal(t, tt.wantUrgency, n.Urgency)
			assert.Equal(t, tt.wantName, n.UrgencyName)
		})
	}
}

func TestNotification_BodyTruncated(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		maxLen int
		want   string
	}{
		{"short body", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"very short max", "hello", 3, "hel"},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"multiline body", "hello\nworld\ntest", 20, "hello world test"},
		{"tabs and spaces", "hello\t\t  world", 20, "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{Body: tt.body}
			assert.Equal(t, tt.want, n.BodyTruncated(tt.maxLen))
		})
	}
}

func TestNotification_StackKey(t *testing.T) {
	n1 := &Notification{
		AppName: "firefox",
		Summary: "Download Complete",
		Body:    "file.zip",
	}

	n2 := &Notification{
		AppName: "firefox",
		Summary: "Download Complete",
		Body:    "file.zip",
	}

	n3 := &Notification{
		AppName: "firefox",
		Summary: "Download Complete",
		Body:    "other.zip",
	}

	assert.Equal(t, n1.StackKey(), n2.StackKey())
	assert.NotEqual(t, n1.StackKey(), n3.StackKey())
}

func TestNotification_TimestampTime(t *testing.T) {
	ts := int64(1703577600)
	n := &Notification{Timestamp: ts}
	expected := time.Unix(ts, 0)
	assert.Equal(t, expected, n.TimestampTime())
}

func TestNotification_Clone(t *testing.T) {
	n := validNotification()
	n.Actions = []Action{{Key: "default", Label: "Open"}}

	clone := n.Clone()

	// Verify values are copied
	assert.Equal(t, n.NoticaID, clone.NoticaID)
	assert.Equal(t, n.AppName, clone.AppName)
	assert.Equal(t, n.Actions, clone.Actions)

	// Verify independence
	clone.AppName = "modified"
	clone.Actions[0].Label = "Dismiss"

	assert.NotEqual(t, n.AppName, clone.AppName)
	assert.Equal(t, "Open", n.Actions[0].Label)
}

func TestDefaultAction(t *testing.T) {
	n := validNotification()

	_, ok := n.DefaultAction()
	assert.False(t, ok, "no actions means no default")

	n.Actions = []Action{
		{Key: "open", Label: "Open"},
		{Key: "default", Label: "Activate"},
	}

	a, ok := n.DefaultAction()
	require.True(t, ok)
	assert.Equal(t, "Activate", a.Label)
}

func TestULIDFormat(t *testing.T) {
	// Verify ULIDs are valid 26-character strings
	n, err := NewNotification()
	require.NoError(t, err)

	assert.Len(t, n.NoticaID, 26, "ULID should be 26 characters")

	// Verify it's a valid ULID by parsing
	for _, c := range n.NoticaID {
		// ULID uses Crockford's base32: 0-9, A-Z except I, L, O, U
		valid := (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z' && c != 'I' && c != 'L' && c != 'O' && c != 'U')
		assert.True(t, valid, "ULID character %c should be valid Crockford base32", c)
	}
}

// Helper function to create a valid notification for testing.
func validNotification() *Notification {
	return &Notification{
		NoticaID:    "01HQGXK5P0000000000000000",
		ReceivedAt:  time.Now().Unix(),
		ID:          123,
		AppName:     "firefox",
		Summary:     "Download Complete",
		Body:        "myfile.zip has finished downloading",
		Timestamp:   time.Now().Unix(),
		Urgency:     UrgencyNormal,
		UrgencyName: "normal",
	}
}
