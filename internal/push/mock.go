package push

import "daycare_backend/internal/logger"

// NoopProvider drops push messages. Used when push is disabled.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) SendToUsers(userIDs []string, msg *Message) error {
	logger.Debug("push suppressed (provider disabled)", "users", len(userIDs), "title", msg.Title)
	return nil
}
