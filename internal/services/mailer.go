package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-backend/internal/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer sends transactional email through the Resend HTTP API. When no API
// key is configured every send is a no-op.
type Mailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		apiKey:   cfg.ResendAPIKey,
		from:     cfg.MailFrom,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendWelcome emails a welcome message to a newly registered user. Callers
// treat failures as non-fatal.
func (m *Mailer) SendWelcome(email, fullName string) error {
	if m.apiKey == "" {
		return nil
	}

	payload := map[string]string{
		"from":    m.from,
		"to":      email,
		"subject": "Welcome to My Favorite Recipes",
		"html": fmt.Sprintf(
			"<h2>Welcome, %s!</h2><p>Your account has been created successfully.</p>"+
				"<p>You can now log in and start sharing your favorite recipes!</p>",
			fullName),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}
	return nil
}
