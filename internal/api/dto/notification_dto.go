package dto

import "github.com/anyhire/anyhire-be/internal/api/model"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListNotificationsRequest carries the paging query parameters for
// GET /notifications.
type ListNotificationsRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize applies defaults and caps. Non-positive values fall back to
// the defaults; limit is capped so a single page stays bounded.
func (r *ListNotificationsRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = defaultPage
	}
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if r.Limit > maxLimit {
		r.Limit = maxLimit
	}
}

// ListNotificationsResponse is the paginated envelope for notifications.
type ListNotificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Total         int                  `json:"total"`
	Page          int                  `json:"page"`
	Limit         int                  `json:"limit"`
	TotalPages    int                  `json:"total_pages"`
	UnreadCount   int                  `json:"unread_count"`
}
