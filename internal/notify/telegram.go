package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"firemonitor/internal/localtime"
	"firemonitor/internal/logger"
)

const sendTimeout = 10 * time.Second

// Telegram delivers alert notifications through the Telegram Bot API.
// With an empty token or chat id it is disabled and every send is a
// silent no-op, so callers never need to special-case configuration.
type Telegram struct {
	token  string
	chatID string
	client *http.Client
	logger *logger.Logger

	// baseURL is overridable for tests.
	baseURL string
}

func NewTelegram(token, chatID string, logger *logger.Logger) *Telegram {
	t := &Telegram{
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: sendTimeout},
		logger:  logger,
		baseURL: "https://api.telegram.org",
	}

	if t.Enabled() {
		logger.Info("✓ Telegram notifications enabled")
	} else {
		logger.Info("Telegram notifications disabled (no token/chat configured)")
	}
	return t
}

// Enabled reports whether a token and chat are configured.
func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

// FireAlert announces a newly activated fire alert.
func (t *Telegram) FireAlert(alertID int64, detections int, severity string, at localtime.LocalTime) error {
	text := fmt.Sprintf(
		"🔥 <b>FIRE ALERT #%d</b>\n\n🔴 Severity: %s\n📊 Detections: %d\n🕐 %s",
		alertID, severity, detections, at.Display)
	return t.sendMessage(text)
}

// AlertCleared announces a manual resolution.
func (t *Telegram) AlertCleared(durationSeconds int64) error {
	text := fmt.Sprintf("✅ <b>Alert cleared</b>\n\n⏱ Active for %s", formatDuration(durationSeconds))
	return t.sendMessage(text)
}

func (t *Telegram) sendMessage(text string) error {
	if !t.Enabled() {
		return nil
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	form := url.Values{
		"chat_id":    {t.chatID},
		"text":       {text},
		"parse_mode": {"HTML"},
	}

	resp, err := t.client.PostForm(endpoint, form)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

func formatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}
