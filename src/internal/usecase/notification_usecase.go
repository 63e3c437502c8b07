package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type AnnouncementBackend interface {
	ListByAudience(ctx context.Context, role, userID string) ([]entity.Announcement, error)
	UnreadCount(ctx context.Context, role, userID string) (int, error)
	MarkRead(ctx context.Context, announcementID, userID string) error
}

type NotificationUseCase struct {
	Log           log.Log
	Validate      *validator.Validate
	Announcements AnnouncementBackend
	Config        *viper.Viper
	Redis         redis.UniversalClient
}

func NewNotificationUseCase(
	logger log.Log,
	validate *validator.Validate,
	announcements AnnouncementBackend,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
) *NotificationUseCase {
	return &NotificationUseCase{
		Log:           logger,
		Validate:      validate,
		Announcements: announcements,
		Config:        cfg,
		Redis:         redisClient,
	}
}

// PollUnread fetches the unread count for the session's role and decides
// whether to cue. Zero doubles as the "nothing observed yet" sentinel, so the
// first nonzero observation after login never cues.
func (c *NotificationUseCase) PollUnread(ctx context.Context, request *model.UnreadCountRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	count, err := c.Announcements.UnreadCount(ctx, request.Role, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load unread count"
		result.Error = errObj
		c.Log.Error("notification-usecase", err.Error(), "PollUnread", request.UserID)
		return result
	}

	previous := c.lastObservedCount(ctx, request.UserID)
	playSound := ShouldPlaySound(previous, count) || c.consumePendingCue(ctx, request.UserID)
	c.storeObservedCount(ctx, request.UserID, count)

	result.Data = &model.UnreadCountResponse{
		UnreadCount: count,
		PlaySound:   playSound,
	}
	return result
}

// List is fetched lazily when the panel opens; it is never polled or cached.
func (c *NotificationUseCase) List(ctx context.Context, request *model.NotificationListRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	announcements, err := c.Announcements.ListByAudience(ctx, request.Role, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load notifications"
		result.Error = errObj
		c.Log.Error("notification-usecase", err.Error(), "List", request.UserID)
		return result
	}

	result.Data = &model.NotificationListResponse{Items: announcements}
	return result
}

// MarkRead tells upstream, then optimistically decrements the local counter
// floored at zero without waiting for the next poll.
func (c *NotificationUseCase) MarkRead(ctx context.Context, request *model.MarkReadRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := c.Announcements.MarkRead(ctx, request.AnnouncementID, request.UserID); err != nil {
		result.Error = asUsecaseError(err, "failed to mark notification as read")
		c.Log.Error("notification-usecase", err.Error(), "MarkRead", request.AnnouncementID)
		return result
	}

	count := c.lastObservedCount(ctx, request.UserID) - 1
	if count < 0 {
		count = 0
	}
	c.storeObservedCount(ctx, request.UserID, count)

	result.Data = &model.MarkReadResponse{UnreadCount: count}
	return result
}

func (c *NotificationUseCase) lastObservedCount(ctx context.Context, userID string) int {
	value, err := c.Redis.Get(ctx, fmt.Sprintf(unreadKeyPattern, userID)).Result()
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return count
}

func (c *NotificationUseCase) storeObservedCount(ctx context.Context, userID string, count int) {
	key := fmt.Sprintf(unreadKeyPattern, userID)
	if err := c.Redis.Set(ctx, key, strconv.Itoa(count), 24*time.Hour).Err(); err != nil {
		c.Log.Error("notification-usecase", err.Error(), "storeObservedCount", userID)
	}
}

// BackgroundPoll is the 30s refresher variant. It observes the count for the
// session and, when an increase crosses a real previous value, parks a
// pending cue that the next client poll consumes. The cue therefore still
// fires exactly once per observed increase.
func (c *NotificationUseCase) BackgroundPoll(ctx context.Context, userID, role string) error {
	count, err := c.Announcements.UnreadCount(ctx, role, userID)
	if err != nil {
		return err
	}
	previous := c.lastObservedCount(ctx, userID)
	if ShouldPlaySound(previous, count) {
		key := fmt.Sprintf("ANNOUNCEMENT:CUE:%s", userID)
		if err := c.Redis.Set(ctx, key, "1", time.Hour).Err(); err != nil {
			c.Log.Error("notification-usecase", err.Error(), "BackgroundPoll", userID)
		}
	}
	c.storeObservedCount(ctx, userID, count)
	return nil
}

func (c *NotificationUseCase) consumePendingCue(ctx context.Context, userID string) bool {
	key := fmt.Sprintf("ANNOUNCEMENT:CUE:%s", userID)
	value, err := c.Redis.GetDel(ctx, key).Result()
	return err == nil && value != ""
}

// ShouldPlaySound cues exactly once per observed increase, and only when the
// previous observation was a real nonzero count.
func ShouldPlaySound(previous, current int) bool {
	return previous > 0 && current > previous
}
