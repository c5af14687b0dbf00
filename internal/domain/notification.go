package domain

import "time"

// NotificationCategory distinguishes the two derived alert families.
type NotificationCategory string

const (
	NotificationNewTicket NotificationCategory = "new-ticket"
	NotificationDeadline  NotificationCategory = "deadline"
)

// Notification is a derived dashboard alert. It is recomputed on every
// poll from ticket state plus a per-session read set and is never
// persisted server-side.
type Notification struct {
	ID        string
	TicketID  string
	Category  NotificationCategory
	Title     string
	Detail    string
	TimeLabel string
	Read      bool
	CreatedAt time.Time
}
