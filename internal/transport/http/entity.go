// nolint: revive
package httpt

import (
	"time"

	"artnotifier/internal/entity"
)

// swagger:model DispatchRequest
type DispatchRequest struct {
	UserID       string         `json:"userId"                 binding:"required,uuid"         example:"0190f3a2-7c1e-7d3a-9b52-3f1d2c4e5a6b"`
	Type         string         `json:"type"                   binding:"required"              example:"email"`
	Category     string         `json:"category"               binding:"required"              example:"analysis_complete"`
	Title        string         `json:"title"                  binding:"required,max=200"      example:"Analysis Complete!"`
	Message      string         `json:"message"                binding:"required,max=1000"     example:"Your artwork has been analyzed."`
	Priority     string         `json:"priority,omitempty"     binding:"omitempty,oneof=low normal high urgent" example:"normal"`
	Data         map[string]any `json:"data,omitempty"`
	ScheduledFor *time.Time     `json:"scheduledFor,omitempty" example:"2026-10-27T10:00:00Z"`
}

// swagger:model DispatchResponse
type DispatchResponse struct {
	ID         string `json:"id,omitempty"         example:"0190f3a2-7c1e-7d3a-9b52-3f1d2c4e5a6b"`
	Suppressed bool   `json:"suppressed,omitempty" example:"false"`
}

type ListParams struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Type     string `form:"type"`
	Unread   bool   `form:"unread"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// swagger:model PreferencesBody
type PreferencesBody struct {
	NotificationPreferences *entity.PreferenceMatrix `json:"notificationPreferences" binding:"required"`
}

// swagger:model PreferencesResponse
type PreferencesResponse struct {
	Message                 string                  `json:"message,omitempty" example:"Preferences updated successfully"`
	NotificationPreferences entity.PreferenceMatrix `json:"notificationPreferences"`
}

// swagger:model MarkAllReadResponse
type MarkAllReadResponse struct {
	Message string `json:"message" example:"All notifications marked as read"`
	Updated int64  `json:"updated" example:"12"`
}

// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"        example:"Notification not found"`
	Code    string `json:"code,omitempty" example:"not_found"`
}

// swagger:model SuccessResponse
type SuccessResponse struct {
	Message string `json:"message" example:"Notification deleted successfully"`
}
