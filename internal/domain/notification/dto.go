package notification

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

type SendRequest struct {
	Title string            `json:"title" validate:"required"`
	Body  string            `json:"body" validate:"required"`
	Data  map[string]string `json:"data"`
}

type SendToTokenRequest struct {
	SendRequest
	Token string `json:"token" validate:"required"`
}

type SendToUserRequest struct {
	SendRequest
	UserID string `json:"user_id" validate:"required"`
}

type SendToTopicRequest struct {
	SendRequest
	Topic string `json:"topic" validate:"required"`
}

// SendResult sums a multicast: one device either got the message or it
// did not.
type SendResult struct {
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`
}
