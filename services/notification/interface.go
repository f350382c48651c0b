package notification

import (
	"context"
	"fmt"

	userRepo "innroutes/database/repository/user"
	"innroutes/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	SendTokenPush(ctx context.Context, token, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation. When no
// FCM client is configured, pushes degrade to log lines so dev setups
// work without Firebase credentials.
type DefaultNotificationService struct {
	users userRepo.UserRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{users: users}, nil
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPush(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.users.GetByID(userID)
	if err != nil || u == nil {
		return fmt.Errorf("SendUserPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPush: user %s has no FCM token", userID)
	}
	return s.SendTokenPush(ctx, u.FCMToken, title, body, data)
}

// SendTokenPush sends a push straight to a device token.
func (s *DefaultNotificationService) SendTokenPush(
	ctx context.Context,
	token, title, body string,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Info("push delivery disabled, logging instead",
			zap.String("title", title), zap.String("body", body))
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendTokenPush: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("SendTokenPush: message sent", zap.String("response", response))
	return nil
}
