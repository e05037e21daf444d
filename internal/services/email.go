package services

import (
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"harborview/internal/config"
	apperrors "harborview/pkg/errors"
)

// EmailService is the notification dispatcher. When mail is not configured it
// degrades to a no-op: sends log and return immediately without error, and
// the rest of the system behaves exactly as if the email had been skipped.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether outbound mail is configured
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// SendHTMLEmail sends a multipart HTML email with plain text fallback and
// returns the generated Message-ID. Exactly one attempt is made; there is no
// retry or queue.
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) (string, error) {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return "", nil
	}

	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return "", fmt.Errorf("email service not properly configured")
	}

	messageID := s.newMessageID()

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	boundary := "----=_NextPart_" + hex.EncodeToString(randomBytes(8))

	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		fmt.Sprintf("Message-ID: %s\r\n", messageID) +
		fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	if err := s.send(to, []byte(message)); err != nil {
		return "", apperrors.Notification("failed to send email", err)
	}

	return messageID, nil
}

// send performs one SMTP delivery with every step bounded by the configured
// timeout, so a hung relay cannot stall the notification goroutine.
func (s *EmailService) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	conn, err := net.DialTimeout("tcp", addr, s.cfg.SendTimeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if err := conn.SetDeadline(time.Now().Add(s.cfg.SendTimeout)); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func (s *EmailService) newMessageID() string {
	domain := s.cfg.SMTPHost
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("<%d.%s@%s>", time.Now().UnixNano(), hex.EncodeToString(randomBytes(6)), domain)
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// renderLayout wraps a content fragment in the shared branded email shell
// used by every notification the intake handlers send.
func renderLayout(title, contentHTML string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f5f5f5; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;">
    <table role="presentation" style="width: 100%%; border-collapse: collapse;">
        <tr>
            <td align="center" style="padding: 40px 0;">
                <table role="presentation" style="width: 600px; border-collapse: collapse; background-color: #ffffff; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="padding: 0;">
                            <div style="background: linear-gradient(135deg, #0D3B66 0%%, #1C5D99 100%%); padding: 40px; text-align: center;">
                                <h1 style="margin: 0; color: #ffffff; font-size: 30px; font-weight: 300; letter-spacing: 2px;">Harborview<span style="color: #7FB3E8;">.</span></h1>
                                <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 14px; opacity: 0.9;">%s</p>
                            </div>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px;">
                            %s
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px; background-color: #F9FAFB; border-top: 1px solid #E5E7EB; text-align: center;">
                            <p style="margin: 0 0 8px 0; color: #6B7280; font-size: 13px;">This email was sent from your website</p>
                            <p style="margin: 0; color: #9CA3AF; font-size: 12px;">&copy; %s Harborview Advisors. All rights reserved.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`, title, title, contentHTML, time.Now().Format("2006"))
}

// detailRow renders one label/value row for the detail tables in
// notification emails.
func detailRow(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(`<tr><td style="padding: 8px 0; width: 160px; vertical-align: top;"><strong style="color: #6B7280; font-size: 14px;">%s:</strong></td><td style="padding: 8px 0; color: #111827; font-size: 15px;">%s</td></tr>`, label, value)
}

// detailTable wraps detail rows in the shared grey panel.
func detailTable(rows string) string {
	return fmt.Sprintf(`<table role="presentation" style="width: 100%%; border-collapse: collapse; background: #F9FAFB; border-radius: 8px; padding: 20px;">%s</table>`, rows)
}
