package email

import (
	"net/mail"
	"strings"

	"disiplinku_backend/internals/configs"
)

type Message struct {
	To          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

func (m Message) HasRecipients() bool { return len(m.To) > 0 }

func (m Message) HasContent() bool {
	return strings.TrimSpace(m.TextContent) != "" || strings.TrimSpace(m.HTMLContent) != ""
}

// Service: kirim fire-and-forget; kegagalan hanya di-log.
type Service interface {
	SendMessages(messages ...*Message)
}

// New memilih SendGrid kalau SENDGRID_API_KEY terisi, selain itu console.
func New(cfg *configs.Config) Service {
	if cfg.SendgridAPIKey != "" {
		return NewSendgridService(cfg.SendgridAPIKey, cfg.AppName, cfg.MailFrom)
	}
	return NewConsoleService(cfg.AppName, cfg.MailFrom)
}
