package mailer

import (
	"strings"
	"testing"
)

func TestBuildVerificationEmail(t *testing.T) {
	email := BuildVerificationEmail(VerificationEmailData{
		SiteName:  "CodeShare",
		Code:      "123456",
		ExpiresIn: "10 minutes",
	})

	if !strings.HasPrefix(email.Subject, "123456") {
		t.Errorf("subject should lead with the code, got %q", email.Subject)
	}
	if !strings.Contains(email.TextBody, "123456") {
		t.Error("text body missing code")
	}
	if !strings.Contains(email.TextBody, "10 minutes") {
		t.Error("text body missing expiry")
	}
	if !strings.Contains(email.HTMLBody, "123456") {
		t.Error("HTML body missing code")
	}
	if !strings.Contains(email.HTMLBody, "CodeShare") {
		t.Error("HTML body missing site name")
	}
}

func TestBuildVerificationEmail_EscapesHTML(t *testing.T) {
	email := BuildVerificationEmail(VerificationEmailData{
		SiteName:  `<script>alert(1)</script>`,
		Code:      "123456",
		ExpiresIn: "10 minutes",
	})
	if strings.Contains(email.HTMLBody, "<script>") {
		t.Error("site name was not escaped in HTML body")
	}
}

func TestBuildMessage_Multipart(t *testing.T) {
	m := New(Config{Host: "localhost", Port: 1025, From: "noreply@codeshare.dev", FromName: "CodeShare"})
	msg := string(m.buildMessage(Email{
		To:       "alice@example.com",
		Subject:  "hello",
		TextBody: "text part",
		HTMLBody: "<p>html part</p>",
	}))

	for _, want := range []string{
		"From: CodeShare <noreply@codeshare.dev>",
		"To: alice@example.com",
		"Subject: hello",
		"multipart/alternative",
		"text/plain",
		"text/html",
		"text part",
		"<p>html part</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}
