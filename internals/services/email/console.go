package email

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"
)

type consoleService struct {
	from          mail.Address
	subjPrefix    string
	disableOutput bool
}

var _ Service = (*consoleService)(nil)

func NewConsoleService(appName, fromEmail string) Service {
	return &consoleService{
		from:       mail.Address{Name: appName, Address: fromEmail},
		subjPrefix: "[" + appName + "] ",
	}
}

func (svc *consoleService) SendMessages(messages ...*Message) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc *consoleService) sendMessage(msg *Message) bool {
	if msg == nil || !msg.HasRecipients() || !msg.HasContent() {
		return false
	}
	if svc.disableOutput {
		return true
	}
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.from.String())
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n\r\n", joinAddresses(msg.To))
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.TextContent)
	log.Println("[INFO] email (console)\n" + body.String())
	return true
}

func joinAddresses(addrs []mail.Address) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return strings.Join(out, ", ")
}

// MockService: sinkron, tanpa output; pesan yang terkirim bisa diperiksa di test.
type MockService struct {
	consoleService
	mu   sync.Mutex
	Sent []Message
}

func NewMockService() *MockService {
	return &MockService{consoleService: consoleService{subjPrefix: "[test] ", disableOutput: true}}
}

func (svc *MockService) SendMessages(messages ...*Message) {
	for _, msg := range messages {
		if svc.sendMessage(msg) {
			svc.mu.Lock()
			svc.Sent = append(svc.Sent, *msg)
			svc.mu.Unlock()
		}
	}
}

func (svc *MockService) Messages() []Message {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]Message(nil), svc.Sent...)
}
