package email

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"website_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTemplates(t *testing.T) *TemplateManager {
	t.Helper()
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)
	return tm
}

func TestRenderEmail_TextWithHTMLAlternative(t *testing.T) {
	tm := newTestTemplates(t)

	msg, err := RenderEmail(tm, SubjectNewPassword, "users/emails/new_user_password", "email1@example.com",
		TemplateData{"url": "https://example.com/password/?token=abc"}, "webmaster@localhost")
	require.NoError(t, err)

	assert.Equal(t, []string{"email1@example.com"}, msg.To)
	assert.Equal(t, "webmaster@localhost", msg.From)
	assert.Contains(t, msg.Body, "https://example.com/password/?token=abc")
	assert.Contains(t, msg.HTMLBody, `href="https://example.com/password/?token=abc"`)
	assert.False(t, msg.IsHTMLOnly())
	assert.False(t, bytes.HasPrefix([]byte(msg.Body), []byte("\n")))
}

func TestRenderEmail_HTMLOnly(t *testing.T) {
	tm := newTestTemplates(t)

	msg, err := RenderEmail(tm, SubjectNoAccount, "users/emails/no_account", "nobody@example.com", nil, "webmaster@localhost")
	require.NoError(t, err)
	assert.Empty(t, msg.Body)
	assert.True(t, msg.IsHTMLOnly())
}

func TestRenderEmail_MissingTemplate(t *testing.T) {
	tm := newTestTemplates(t)

	_, err := RenderEmail(tm, "subject", "users/emails/missing", "a@example.com", nil, "")
	assert.ErrorIs(t, err, ErrTemplateDoesNotExist)
}

func TestTemplateManager_EscapesHTMLOnly(t *testing.T) {
	tm := NewTemplateManager()
	require.NoError(t, tm.AddHTML("x", "<p>{{ .v }}</p>"))
	require.NoError(t, tm.AddText("x", "{{ .v }}"))

	html, err := tm.RenderHTML("x", TemplateData{"v": "<b>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>&lt;b&gt;</p>", html)

	text, err := tm.RenderText("x", TemplateData{"v": "<b>"})
	require.NoError(t, err)
	assert.Equal(t, "<b>", text)
}

func TestBuildMessage_Multipart(t *testing.T) {
	m, err := buildMessage(&Email{
		From:     "webmaster@localhost",
		To:       []string{"email1@example.com"},
		Subject:  SubjectNewPassword,
		Body:     "plain",
		HTMLBody: "<p>html</p>",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "multipart/alternative")
	assert.Contains(t, buf.String(), "text/plain")
	assert.Contains(t, buf.String(), "text/html")

	_, err = buildMessage(&Email{Subject: "x"})
	assert.Error(t, err)
}

func TestMemoryProvider(t *testing.T) {
	p := NewMemoryProvider()
	require.NoError(t, p.Send(context.Background(), &Email{To: []string{"a@example.com"}, Subject: "hi"}))
	require.Len(t, p.Outbox(), 1)
	assert.Equal(t, "hi", p.Outbox()[0].Subject)

	p.Reset()
	assert.Empty(t, p.Outbox())
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.EmailConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryProvider{}, p)

	_, err = NewProvider(config.EmailConfig{Backend: "smtp"})
	assert.Error(t, err)

	_, err = NewProvider(config.EmailConfig{Backend: "pigeon"})
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "website: New password", Subject("en", SubjectNewPassword))
	assert.Equal(t, "website: Nytt lösenord", Subject("sv", SubjectNewPassword))
	assert.Equal(t, "website: Inget konto", Subject("sv-SE", SubjectNoAccount))
	assert.Equal(t, "website: No Account", Subject("de", SubjectNoAccount))
}

func TestSMTPProvider_SendTimesOut(t *testing.T) {
	// сервер принимает соединение и молчит, приветствие SMTP не приходит
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	p, err := NewSMTPProvider(&SMTPConfig{Host: "127.0.0.1", Port: addr.Port, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	err = p.Send(context.Background(), &Email{
		From:    "webmaster@localhost",
		To:      []string{"email1@example.com"},
		Subject: "hello",
		Body:    "body",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSMTPProvider_DefaultTimeout(t *testing.T) {
	p, err := NewSMTPProvider(&SMTPConfig{Host: "localhost", Port: 25})
	require.NoError(t, err)
	assert.Equal(t, defaultSMTPTimeout, p.timeout)

	cfg := SMTPConfigFrom(config.EmailConfig{SMTPHost: "localhost", SMTPPort: 25})
	assert.Equal(t, defaultSMTPTimeout, cfg.Timeout)
}
