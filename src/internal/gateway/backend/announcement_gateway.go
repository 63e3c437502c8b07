package backend

import (
	"context"
	"fmt"
	"net/http"

	"agent-portal-service/src/internal/entity"
)

type AnnouncementGateway struct {
	Client *Client
}

func NewAnnouncementGateway(client *Client) *AnnouncementGateway {
	return &AnnouncementGateway{Client: client}
}

func (g *AnnouncementGateway) ListByAudience(ctx context.Context, role, userID string) ([]entity.Announcement, error) {
	var announcements []entity.Announcement
	path := fmt.Sprintf("/api/announcement/audience/%s?userId=%s", role, userID)
	err := g.Client.do(ctx, http.MethodGet, path, "", nil, &announcements)
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (g *AnnouncementGateway) UnreadCount(ctx context.Context, role, userID string) (int, error) {
	var count entity.UnreadCount
	path := fmt.Sprintf("/api/announcement/unread/%s?userId=%s", role, userID)
	err := g.Client.do(ctx, http.MethodGet, path, "", nil, &count)
	if err != nil {
		return 0, err
	}
	return count.UnreadCount, nil
}

type markReadBody struct {
	UserID string `json:"userId"`
}

func (g *AnnouncementGateway) MarkRead(ctx context.Context, announcementID, userID string) error {
	path := fmt.Sprintf("/api/announcement/read/%s", announcementID)
	return g.Client.do(ctx, http.MethodPost, path, "", markReadBody{UserID: userID}, nil)
}
