package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"harborview/internal/config"
	apperrors "harborview/pkg/errors"
)

func TestSendHTMLEmailDisabledIsNoOp(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})

	id, err := svc.SendHTMLEmail("someone@example.com", "Subject", "<p>hi</p>", "hi")
	if err != nil {
		t.Fatalf("disabled send returned error: %v", err)
	}
	if id != "" {
		t.Errorf("disabled send returned id %q, want empty", id)
	}
	if svc.IsEnabled() {
		t.Error("IsEnabled() = true for disabled config")
	}
}

func TestSendHTMLEmailRejectsIncompleteConfig(t *testing.T) {
	// Enabled but missing credentials should error rather than dial.
	svc := NewEmailService(&config.EmailConfig{
		Enabled:     true,
		SMTPHost:    "smtp.example.com",
		SendTimeout: time.Second,
	})

	if _, err := svc.SendHTMLEmail("someone@example.com", "Subject", "", "hi"); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestSendHTMLEmailFailureCarriesNotificationCode(t *testing.T) {
	// Port 1 on loopback refuses immediately; the failure must surface as a
	// notification error, which callers log and never show to clients.
	svc := NewEmailService(&config.EmailConfig{
		Enabled:     true,
		SMTPHost:    "127.0.0.1",
		SMTPPort:    1,
		Username:    "mailer@example.com",
		Password:    "mailer-password",
		FromEmail:   "noreply@example.com",
		SendTimeout: 500 * time.Millisecond,
	})

	_, err := svc.SendHTMLEmail("someone@example.com", "Subject", "", "hi")
	if err == nil {
		t.Fatal("expected transport failure")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotification {
		t.Errorf("err = %v, want notification-coded AppError", err)
	}
}

func TestNewMessageID(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{SMTPHost: "smtp.example.com"})

	id := svc.newMessageID()
	if !strings.HasPrefix(id, "<") || !strings.HasSuffix(id, ">") {
		t.Errorf("id %q is not angle-bracketed", id)
	}
	if !strings.Contains(id, "@smtp.example.com") {
		t.Errorf("id %q does not carry the host domain", id)
	}

	if other := svc.newMessageID(); other == id {
		t.Error("two generated ids should differ")
	}
}

func TestRenderLayout(t *testing.T) {
	out := renderLayout("Weekly Digest", "<p>Body here</p>")

	for _, want := range []string{"Weekly Digest", "<p>Body here</p>", "Harborview", "<!DOCTYPE html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered layout missing %q", want)
		}
	}
}

func TestDetailRow(t *testing.T) {
	if detailRow("Company", "") != "" {
		t.Error("empty value should render no row")
	}
	row := detailRow("Company", "Acme")
	if !strings.Contains(row, "Company") || !strings.Contains(row, "Acme") {
		t.Errorf("row %q missing label or value", row)
	}
}
