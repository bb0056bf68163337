package notification

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
)

// Messenger is the slice of the FCM client the service uses.
// *messaging.Client satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService accepts a nil messenger; send operations then fail with
// ErrMessagingUnavailable while device registration keeps working.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice upserts by token. A token already registered to
// another user is reassigned: the same physical device changed hands.
func (s *Service) RegisterDevice(ctx context.Context, userID string, req RegisterDeviceRequest) (*Device, error) {
	existing, err := s.repo.GetByToken(ctx, req.Token)
	if err == nil {
		existing.UserID = userID
		existing.Platform = req.Platform
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, ErrDeviceNotFound) {
		return nil, err
	}

	device := &Device{
		ID:       uuid.NewString(),
		Token:    req.Token,
		Platform: req.Platform,
		UserID:   userID,
	}
	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// UnregisterDevice removes the token when it belongs to the caller.
func (s *Service) UnregisterDevice(ctx context.Context, userID, token string) error {
	device, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if device.UserID != userID {
		return ErrDeviceNotFound
	}
	return s.repo.Delete(ctx, device.ID)
}

func (s *Service) ListDevices(ctx context.Context, userID string) ([]Device, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) SendToToken(ctx context.Context, req SendToTokenRequest) error {
	if s.messenger == nil {
		return ErrMessagingUnavailable
	}
	_, err := s.messenger.Send(ctx, &messaging.Message{
		Token: req.Token,
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Data: req.Data,
	})
	return err
}

// SendToUser multicasts to every device the user registered and
// reports per-device delivery counts.
func (s *Service) SendToUser(ctx context.Context, req SendToUserRequest) (*SendResult, error) {
	if s.messenger == nil {
		return nil, ErrMessagingUnavailable
	}

	devices, err := s.repo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}

	resp, err := s.messenger.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Data: req.Data,
	})
	if err != nil {
		return nil, err
	}
	return &SendResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}, nil
}

func (s *Service) SendToTopic(ctx context.Context, req SendToTopicRequest) error {
	if s.messenger == nil {
		return ErrMessagingUnavailable
	}
	_, err := s.messenger.Send(ctx, &messaging.Message{
		Topic: req.Topic,
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Data: req.Data,
	})
	return err
}
