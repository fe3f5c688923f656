package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/config"
)

func TestNewMailService_FallsBackWithoutCredentials(t *testing.T) {
	svc := NewMailService(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587}, zerolog.Nop())
	_, isLog := svc.(*logMailService)
	assert.True(t, isLog)

	svc = NewMailService(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 465, SMTPUsername: "u", SMTPFrom: "no-reply@example.com"}, zerolog.Nop())
	smtpSvc, ok := svc.(*smtpMailService)
	require.True(t, ok)
	assert.True(t, smtpSvc.cfg.UseSSL)
}

func TestSMTPMailService_BuildMessage(t *testing.T) {
	svc := NewSMTPMailService(SMTPConfig{
		From:       "no-reply@example.com",
		FromName:   "Курсы",
		AppName:    "CourseHub",
		AppBaseURL: "https://coursehub.example",
	}).(*smtpMailService)

	html, text, err := svc.renderEmail(EmailData{
		Title:     "Changes in the lessons of your course - Go",
		Intro:     "Some <lessons> changed",
		ButtonURL: "https://coursehub.example",
		ButtonTxt: "Open CourseHub",
		AppName:   "CourseHub",
		Year:      2026,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Some &lt;lessons&gt; changed")
	assert.Contains(t, text, "Some <lessons> changed")

	msg := string(svc.buildMessage([]string{"a@example.com", "b@example.com"}, "Привет", html, text))
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?UTF-8?q?")
	assert.Contains(t, msg, "<no-reply@example.com>")
	assert.Contains(t, msg, "Content-Type: multipart/alternative")
}

func TestSMTPMailService_RenderEmail_PlainTextIsNotEscaped(t *testing.T) {
	svc := NewSMTPMailService(SMTPConfig{AppName: "CourseHub"}).(*smtpMailService)

	html, text, err := svc.renderEmail(EmailData{
		Title:   "Changes - Rock & Roll",
		Intro:   "Dear subscriber, O'Brien!\nLesson one changed.\n\nSee you soon.",
		AppName: "CourseHub",
		Year:    2026,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "Changes - Rock & Roll")
	assert.Contains(t, text, "Dear subscriber, O'Brien!\nLesson one changed.")
	assert.NotContains(t, text, "&amp;")
	assert.NotContains(t, text, "&#39;")

	assert.Contains(t, html, "Rock &amp; Roll")
	assert.Contains(t, html, "<p>Dear subscriber, O&#39;Brien!</p>")
	assert.Contains(t, html, "<p>Lesson one changed.</p>")
	assert.Contains(t, html, "<p>See you soon.</p>")
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, paragraphs("a\n\n  b  \n"))
	assert.Nil(t, paragraphs("\n"))
}
