package model

import "agent-portal-service/src/internal/entity"

type UnreadCountRequest struct {
	UserID string `json:"-" validate:"required"`
	Role   string `json:"-" validate:"required"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
	// PlaySound is true only when the previously observed count was a real
	// nonzero value and the new count is strictly greater; the first
	// observation after login never cues.
	PlaySound bool `json:"playSound"`
}

type NotificationListRequest struct {
	UserID string `json:"-" validate:"required"`
	Role   string `json:"-" validate:"required"`
}

type NotificationListResponse struct {
	Items []entity.Announcement `json:"items"`
}

type MarkReadRequest struct {
	UserID         string `json:"-" validate:"required"`
	AnnouncementID string `json:"-" validate:"required"`
}

type MarkReadResponse struct {
	UnreadCount int `json:"unreadCount"`
}
