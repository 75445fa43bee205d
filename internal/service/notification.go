package service

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Notification is a user-facing toast: a short message plus an optional
// description, usually the underlying error text.
type Notification struct {
	Level       string `json:"level"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }

func Failure(msg string, err error) Notification {
	n := Notification{Level: LevelError, Message: msg}
	if err != nil {
		n.Description = err.Error()
	}
	return n
}
