package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	Channel  string
	Category string
	Status   string
	Priority string
)

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "in_app"
	ChannelPush  Channel = "push"
)

const (
	CategoryWelcome          Category = "welcome"
	CategoryPasswordReset    Category = "password_reset"
	CategorySecurityAlert    Category = "security_alert"
	CategoryAnalysisComplete Category = "analysis_complete"
	CategoryAnalysisFailed   Category = "analysis_failed"
	CategoryAccountUpdate    Category = "account_update"
	CategorySubscription     Category = "subscription"
	CategorySystemAlert      Category = "system_alert"
	CategoryArtworkAdded     Category = "artwork_added"
	CategoryArtworkUpdated   Category = "artwork_updated"
)

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusRead    Status = "read"
)

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const DefaultMaxRetries = 3

var (
	channels   = []Channel{ChannelEmail, ChannelSMS, ChannelInApp, ChannelPush}
	categories = []Category{
		CategoryWelcome, CategoryPasswordReset, CategorySecurityAlert,
		CategoryAnalysisComplete, CategoryAnalysisFailed, CategoryAccountUpdate,
		CategorySubscription, CategorySystemAlert, CategoryArtworkAdded,
		CategoryArtworkUpdated,
	}
)

func Channels() []Channel     { return append([]Channel(nil), channels...) }
func Categories() []Category { return append([]Category(nil), categories...) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelInApp, ChannelPush:
		return true
	}
	return false
}

func (c Channel) String() string { return string(c) }

func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown channel %q: %w", s, ErrInvalidData)
	}
	return c, nil
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q: %w", s, ErrInvalidData)
	}
	return c, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed, StatusRead:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown status %q: %w", s, ErrInvalidData)
	}
	return st, nil
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p Priority) String() string { return string(p) }

// Notification is one message addressed to one user on one channel.
// Identity, addressing and content never change after creation; only the
// lifecycle fields (Status, SentAt, ReadAt, RetryCount, ErrorMessage,
// UpdatedAt, LeaseUntil) move.
type Notification struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	Channel      Channel        `json:"type"`
	Category     Category       `json:"category"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	Data         map[string]any `json:"data"`
	Status       Status         `json:"status"`
	Priority     Priority       `json:"priority"`
	ScheduledFor time.Time      `json:"scheduledFor"`
	SentAt       *time.Time     `json:"sentAt,omitempty"`
	ReadAt       *time.Time     `json:"readAt,omitempty"`
	RetryCount   int            `json:"retryCount"`
	MaxRetries   int            `json:"maxRetries"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	// LeaseUntil is set while a pending record is handed off to its channel
	// adapter and a delivery report is awaited.
	LeaseUntil *time.Time `json:"-"`
}

// Validate checks the fields a caller is responsible for at creation time.
func (n *Notification) Validate() error {
	switch {
	case n.UserID == uuid.Nil:
		return fmt.Errorf("user id is required: %w", ErrInvalidData)
	case !n.Channel.IsValid():
		return fmt.Errorf("invalid channel %q: %w", n.Channel, ErrInvalidData)
	case !n.Category.IsValid():
		return fmt.Errorf("invalid category %q: %w", n.Category, ErrInvalidData)
	case n.Title == "":
		return fmt.Errorf("title is required: %w", ErrInvalidData)
	case n.Message == "":
		return fmt.Errorf("message is required: %w", ErrInvalidData)
	case n.Priority != "" && !n.Priority.IsValid():
		return fmt.Errorf("invalid priority %q: %w", n.Priority, ErrInvalidData)
	case n.MaxRetries < 0:
		return fmt.Errorf("max retries must be >= 0: %w", ErrInvalidData)
	}
	return nil
}

// HandedOff reports whether n is waiting on a delivery report at now.
func (n *Notification) HandedOff(now time.Time) bool {
	return n.LeaseUntil != nil && n.LeaseUntil.After(now)
}

// LeaseExpired reports whether a hand-off ran out without a report.
func (n *Notification) LeaseExpired(now time.Time) bool {
	return n.LeaseUntil != nil && !n.LeaseUntil.After(now)
}

// IsRetryable reports whether a failed record still has retry budget.
func (n *Notification) IsRetryable() bool {
	return n.Status == StatusFailed && n.RetryCount < n.MaxRetries
}
