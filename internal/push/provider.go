package push

// Message is a single push notification payload.
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Provider delivers push notifications to user devices.
type Provider interface {
	// SendToUsers fans the message out to all devices registered for
	// the given user IDs.
	SendToUsers(userIDs []string, msg *Message) error
}
