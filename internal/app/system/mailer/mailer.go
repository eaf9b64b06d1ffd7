// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// ErrSendFailed wraps any SMTP failure so callers can report a
// notification failure distinctly from a store failure.
var ErrSendFailed = errors.New("email send failed")

// Email is a single outbound message with both text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds the SMTP settings for the mailer.
type Config struct {
	Host     string
	Port     int
	User     string // empty disables AUTH (e.g. Mailpit in dev)
	Pass     string
	From     string // from address, e.g. noreply@codeshare.dev
	FromName string // display name, e.g. CodeShare
}

// Mailer is the process-wide notification sender. It is created once at
// startup, injected into the features that send mail, and closed at
// shutdown. Connections are established per message; the SMTP server's
// greeting is checked at construction so misconfiguration fails fast.
type Mailer struct {
	cfg  Config
	addr string
}

// New builds a Mailer from config. It does not dial; call Verify to check
// the server is reachable.
func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:  cfg,
		addr: net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
	}
}

// Verify connects to the SMTP server and disconnects, confirming it is
// reachable. Intended for startup checks; a failure here is logged, not
// fatal, since mail delivery is best-effort.
func (m *Mailer) Verify(ctx context.Context) error {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return c.Quit()
}

// Send delivers one email. The context bounds the dial; SMTP command
// exchange uses the connection's default behavior.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	msg := m.buildMessage(e)

	// smtp.SendMail dials synchronously; honor ctx cancellation by
	// checking before the (bounded) call.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if err := smtp.SendMail(m.addr, auth, m.cfg.From, []string{e.To}, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// Close releases the mailer. Present so the shutdown hook has an explicit
// teardown point; per-message connections mean there is nothing pooled to
// release today.
func (m *Mailer) Close() error { return nil }

const boundary = "codeshare-alt-7f3a9c"

// buildMessage assembles a multipart/alternative MIME message with text
// and HTML parts.
func (m *Mailer) buildMessage(e Email) []byte {
	var b strings.Builder
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	if e.HTMLBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
