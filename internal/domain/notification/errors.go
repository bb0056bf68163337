package notification

import "errors"

var (
	ErrDeviceNotFound       = errors.New("device not found")
	ErrNoDevices            = errors.New("user has no registered devices")
	ErrMessagingUnavailable = errors.New("push messaging is not configured")
)
