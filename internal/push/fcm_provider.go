package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// FCMProvider delivers notifications through the FCM legacy HTTP API.
// User IDs are used as topic names so no device token registry is
// needed on our side.
type FCMProvider struct {
	serverKey string
	endpoint  string
	client    *http.Client
}

func NewFCMProvider(serverKey, endpoint string) *FCMProvider {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &FCMProvider{
		serverKey: serverKey,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmRequest struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (p *FCMProvider) SendToUsers(userIDs []string, msg *Message) error {
	var firstErr error
	for _, userID := range userIDs {
		if err := p.sendToTopic("user_"+userID, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *FCMProvider) sendToTopic(topic string, msg *Message) error {
	payload, err := json.Marshal(fcmRequest{
		To: "/topics/" + topic,
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.serverKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push delivery failed: status %d", resp.StatusCode)
	}
	return nil
}
