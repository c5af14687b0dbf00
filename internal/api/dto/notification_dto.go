package dto

import (
	"time"

	"github.com/sevenboard/board-api/internal/domain"
)

// NotificationResponse is one derived dashboard alert.
type NotificationResponse struct {
	ID        string    `json:"id"`
	CardID    string    `json:"cardId"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	TimeLabel string    `json:"time"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromNotification maps a derived alert.
func FromNotification(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		CardID:    n.TicketID,
		Category:  string(n.Category),
		Title:     n.Title,
		Detail:    n.Detail,
		TimeLabel: n.TimeLabel,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// MarkReadRequest payload. Either a single id or all=true.
type MarkReadRequest struct {
	ID  string `json:"id"`
	All bool   `json:"all"`
}

// LoginRequest payload for the dashboard operator login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
