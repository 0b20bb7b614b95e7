package lfg

// Error is a custom error type for looking-for-group errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     Error = "lfg session not found"
	ErrNotJoinToken        Error = "custom ID is not an lfg join token"
	ErrInvalidStrategy     Error = "invalid expiry strategy"
	ErrNilConfig           Error = "config cannot be nil"
	ErrNilSessionRepo      Error = "session repository cannot be nil"
	ErrNilAliasRepo        Error = "alias repository cannot be nil"
	ErrNilScheduler        Error = "expiry scheduler cannot be nil"
	ErrNilMessenger        Error = "messenger cannot be nil"
	ErrNilMessagingService Error = "messaging service cannot be nil"
	ErrNilClock            Error = "clock cannot be nil"
	ErrNilIDGenerator      Error = "ID generator cannot be nil"
)
