package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/CATyPH67/shop-api/internal/platform/envutil"
	"github.com/CATyPH67/shop-api/internal/platform/logger"
)

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

func SendGridConfigFromEnv() SendGridConfig {
	return SendGridConfig{
		APIKey:    envutil.String("SENDGRID_API_KEY", ""),
		FromEmail: envutil.String("SENDGRID_FROM_EMAIL", "noreply@shop.local"),
		FromName:  envutil.String("SENDGRID_FROM_NAME", "Shop"),
		Timeout:   envutil.Seconds("SENDGRID_TIMEOUT_SECONDS", 30),
	}
}

type sendGridDispatcher struct {
	log *logger.Logger
	cfg SendGridConfig
}

func NewSendGridDispatcher(log *logger.Logger, cfg SendGridConfig) (Dispatcher, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &sendGridDispatcher{log: log.With("service", "SendGridDispatcher"), cfg: cfg}, nil
}

// Submit hands the message to a goroutine and returns immediately. Delivery
// failures are logged with the message id and swallowed.
func (d *sendGridDispatcher) Submit(recipient, subject, body string) {
	msgID := uuid.NewString()
	log := d.log.With("message_id", msgID, "recipient", recipient)
	go func() {
		from := mail.NewEmail(d.cfg.FromName, d.cfg.FromEmail)
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<pre>%s</pre>", body))

		client := sendgrid.NewSendClient(d.cfg.APIKey)
		resp, err := client.Send(message)
		if err != nil {
			log.Warn("notification delivery failed", "error", err)
			return
		}
		if resp.StatusCode >= 400 {
			log.Warn("notification delivery rejected", "status", resp.StatusCode, "body", resp.Body)
			return
		}
		log.Info("notification delivered", "status", resp.StatusCode)
	}()
}
