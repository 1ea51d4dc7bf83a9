package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/KNICEX/price-alert/internal/service/notification"
)

type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

var _ notification.EmailService = (*Service)(nil)

// Service sends mail through a fixed relay over STARTTLS with PLAIN
// auth. Credentials come from configuration, never from source.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) SendText(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body, "text/plain; charset=utf-8")
}

func (s *Service) SendHTML(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body, "text/html; charset=utf-8")
}

func (s *Service) send(ctx context.Context, to, subject, body, contentType string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", notification.ErrDispatch, addr, err)
	}
	// the context deadline bounds the whole session, not just the dial
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	cli, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: handshake: %v", notification.ErrDispatch, err)
	}
	defer cli.Close()

	if err = cli.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
		return fmt.Errorf("%w: starttls: %v", notification.ErrDispatch, err)
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err = cli.Auth(auth); err != nil {
		return fmt.Errorf("%w: auth: %v", notification.ErrDispatch, err)
	}

	if err = cli.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("%w: mail from: %v", notification.ErrDispatch, err)
	}
	if err = cli.Rcpt(to); err != nil {
		return fmt.Errorf("%w: rcpt to: %v", notification.ErrDispatch, err)
	}
	wc, err := cli.Data()
	if err != nil {
		return fmt.Errorf("%w: data: %v", notification.ErrDispatch, err)
	}
	if _, err = wc.Write(buildMessage(s.cfg.From, to, subject, body, contentType)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("%w: write body: %v", notification.ErrDispatch, err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", notification.ErrDispatch, err)
	}
	return cli.Quit()
}

func buildMessage(from, to, subject, body, contentType string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
