package notification

import (
	"context"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, d *Device) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockRepository) GetByToken(ctx context.Context, token string) (*Device, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Device), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, d *Device) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]Device, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Device), args.Error(1)
}

type fakeMessenger struct {
	sent      []*messaging.Message
	multicast []*messaging.MulticastMessage
	batchResp *messaging.BatchResponse
	err       error
}

func (f *fakeMessenger) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-id", nil
}

func (f *fakeMessenger) SendEachForMulticast(ctx context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.multicast = append(f.multicast, msg)
	return f.batchResp, nil
}

func TestService_RegisterDevice_New(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, "tok-1").Return(nil, ErrDeviceNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, nil)
	device, err := svc.RegisterDevice(context.Background(), "user-1", RegisterDeviceRequest{
		Token:    "tok-1",
		Platform: "android",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, device.ID)
	assert.Equal(t, "user-1", device.UserID)
	repo.AssertExpectations(t)
}

func TestService_RegisterDevice_ExistingTokenReassigned(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, "tok-1").Return(&Device{
		ID: "dev-1", Token: "tok-1", UserID: "old-user", Platform: "ios",
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *Device) bool {
		return d.ID == "dev-1" && d.UserID == "new-user" && d.Platform == "android"
	})).Return(nil)

	svc := NewService(repo, nil)
	device, err := svc.RegisterDevice(context.Background(), "new-user", RegisterDeviceRequest{
		Token:    "tok-1",
		Platform: "android",
	})

	require.NoError(t, err)
	assert.Equal(t, "dev-1", device.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UnregisterDevice_WrongOwner(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, "tok-1").Return(&Device{
		ID: "dev-1", Token: "tok-1", UserID: "other",
	}, nil)

	svc := NewService(repo, nil)
	err := svc.UnregisterDevice(context.Background(), "user-1", "tok-1")

	assert.ErrorIs(t, err, ErrDeviceNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_SendToUser_Multicast(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]Device{
		{Token: "tok-1"}, {Token: "tok-2"},
	}, nil)

	messenger := &fakeMessenger{batchResp: &messaging.BatchResponse{SuccessCount: 1, FailureCount: 1}}
	svc := NewService(repo, messenger)

	result, err := svc.SendToUser(context.Background(), SendToUserRequest{
		SendRequest: SendRequest{Title: "Road closed", Body: "Main St until Friday"},
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, messenger.multicast, 1)
	assert.Equal(t, []string{"tok-1", "tok-2"}, messenger.multicast[0].Tokens)
}

func TestService_SendToUser_NoDevices(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByUser", mock.Anything, "user-1").Return([]Device{}, nil)

	svc := NewService(repo, &fakeMessenger{})
	_, err := svc.SendToUser(context.Background(), SendToUserRequest{
		SendRequest: SendRequest{Title: "t", Body: "b"},
		UserID:      "user-1",
	})

	assert.ErrorIs(t, err, ErrNoDevices)
}

func TestService_Send_WithoutMessenger(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)

	err := svc.SendToToken(context.Background(), SendToTokenRequest{
		SendRequest: SendRequest{Title: "t", Body: "b"},
		Token:       "tok-1",
	})
	assert.ErrorIs(t, err, ErrMessagingUnavailable)

	err = svc.SendToTopic(context.Background(), SendToTopicRequest{
		SendRequest: SendRequest{Title: "t", Body: "b"},
		Topic:       "city-news",
	})
	assert.ErrorIs(t, err, ErrMessagingUnavailable)
}

func TestService_SendToTopic(t *testing.T) {
	repo := new(MockRepository)
	messenger := &fakeMessenger{}
	svc := NewService(repo, messenger)

	err := svc.SendToTopic(context.Background(), SendToTopicRequest{
		SendRequest: SendRequest{Title: "Alert", Body: "Water cut tomorrow", Data: map[string]string{"kind": "alert"}},
		Topic:       "city-alerts",
	})

	require.NoError(t, err)
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "city-alerts", messenger.sent[0].Topic)
	assert.Equal(t, "alert", messenger.sent[0].Data["kind"])
}
