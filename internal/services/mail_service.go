package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	htmltemplate "html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/rs/zerolog"

	"coursehub/internal/config"
)

// IMailService delivers one message to a list of addresses.
type IMailService interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// SMTPConfig holds SMTP and branding settings.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@coursehub.dev"
	FromName   string
	UseSSL     bool // true for SMTPS 465
	RequireTLS bool // fail if STARTTLS is not offered

	AppName    string
	AppBaseURL string
}

func SMTPConfigFrom(cfg *config.Config) SMTPConfig {
	return SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   cfg.SMTPFromName,
		UseSSL:     cfg.SMTPPort == 465,
		RequireTLS: true,
		AppName:    cfg.AppName,
		AppBaseURL: cfg.AppBaseURL,
	}
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *htmltemplate.Template
	textTpl *texttemplate.Template
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{"paragraphs": paragraphs}).Parse(baseHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
	}
}

// NewMailService falls back to a logging transport when SMTP credentials are absent.
func NewMailService(cfg *config.Config, logger zerolog.Logger) IMailService {
	if cfg.SMTPUsername == "" || cfg.SMTPFrom == "" {
		logger.Warn().Msg("SMTP is not configured, notifications will only be logged")
		return NewLogMailService(logger)
	}
	return NewSMTPMailService(SMTPConfigFrom(cfg))
}

func (s *smtpMailService) Send(ctx context.Context, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	html, text, err := s.renderEmail(EmailData{
		Title:     subject,
		Intro:     body,
		ButtonURL: s.cfg.AppBaseURL,
		ButtonTxt: "Open " + s.cfg.AppName,
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(ctx, recipients, subject, html, text)
}

// ------------------- Rendering -------------------

type EmailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; background: #f4f6fb; color: #1f2937; font-family: Helvetica, Arial, sans-serif; }
    .card { max-width: 560px; margin: 32px auto; background: #fff; border-radius: 12px; border: 1px solid #e5e7eb; }
    .brand { padding: 20px 28px; font-weight: 700; color: #4338ca; border-bottom: 1px solid #e5e7eb; }
    .content { padding: 28px; line-height: 1.6; }
    .btn { display: inline-block; padding: 12px 24px; background: #4338ca; color: #fff !important; border-radius: 8px; text-decoration: none; }
    .footer { padding: 16px 28px; font-size: 12px; color: #6b7280; text-align: center; }
  </style>
</head>
<body>
  <div class="card">
    <div class="brand">{{.AppName}}</div>
    <div class="content">
      <h2>{{.Title}}</h2>
      {{range paragraphs .Intro}}<p>{{.}}</p>
      {{end}}      {{if .ButtonURL}}<p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>{{end}}
    </div>
    <div class="footer">&copy; {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

// paragraphs splits a plain text body on line breaks, dropping blank lines.
func paragraphs(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) buildMessage(recipients []string, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", strings.Join(recipients, ", "))
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) send(ctx context.Context, recipients []string, subject, htmlBody, textBody string) error {
	msg := s.buildMessage(recipients, subject, htmlBody, textBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	var (
		conn net.Conn
		err  error
	)
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	for _, to := range recipients {
		if err = c.Rcpt(to); err != nil {
			return fmt.Errorf("rcpt %s: %w", to, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

type logMailService struct {
	logger zerolog.Logger
}

func NewLogMailService(logger zerolog.Logger) IMailService {
	return &logMailService{logger: logger}
}

func (l *logMailService) Send(_ context.Context, subject, body string, recipients []string) error {
	l.logger.Info().
		Strs("recipients", recipients).
		Str("subject", subject).
		Str("body", body).
		Msg("mail delivery skipped, SMTP not configured")
	return nil
}
