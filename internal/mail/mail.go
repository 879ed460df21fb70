package mail

import (
	"fmt"

	"github.com/aymerick/raymond"
	"gopkg.in/gomail.v2"
)

// layoutTemplate is the shared HTML shell: app-name header, white card body,
// footer. Child templates render into {{{body}}}.
const layoutTemplate = `<html>
  <body style="margin:0;padding:0;background-color:#f3f4f6;font-family:sans-serif;">
    <div style="text-align:center;margin-top:40px;">
      <h1 style="font-size:32px;font-weight:bold;color:#000;">{{appName}}</h1>
    </div>
    <div style="margin:40px auto 0;width:504px;padding:48px;background:#fff;border-radius:24px;">
      {{{body}}}
    </div>
    <div style="text-align:center;margin-top:32px;">
      <p style="color:#74747A;font-size:14px;">{{appName}} keeps your team's knowledge a question away.</p>
    </div>
  </body>
</html>`

const resetPasswordTemplate = `<p style="color:#1D1D1F;font-size:18px;margin-bottom:32px;">Hi{{#if name}} {{name}}{{/if}},</p>
<p style="color:#1D1D1F;font-size:18px;">A request was made to change your {{appName}} account password. If this was you, you can set a new password here:</p>
<a href="{{link}}" style="display:block;text-align:center;margin:32px 0;border-radius:54px;background:#D946EF;padding:10px 0;color:#fff;font-weight:600;text-decoration:none;">Reset password</a>
<p style="color:#1D1D1F;font-size:18px;">If you don&rsquo;t want to reset your password or didn&rsquo;t request this, just ignore and delete this message.</p>`

const inviteTemplate = `<p style="color:#1D1D1F;font-size:18px;margin-bottom:32px;">Hi,</p>
<p style="color:#1D1D1F;font-size:18px;">You have been invited to join <strong>{{tenantName}}</strong> on {{appName}}. Accept the invitation to start asking questions:</p>
<a href="{{link}}" style="display:block;text-align:center;margin:32px 0;border-radius:54px;background:#D946EF;padding:10px 0;color:#fff;font-weight:600;text-decoration:none;">Join {{tenantName}}</a>
<p style="color:#1D1D1F;font-size:18px;">If you were not expecting this invitation, you can ignore this message.</p>`

// Renderer produces the HTML for transactional emails. Pure; no I/O.
type Renderer struct {
	appName string
}

func NewRenderer(appName string) *Renderer {
	return &Renderer{appName: appName}
}

func (r *Renderer) render(bodyTemplate string, ctx map[string]any) (string, error) {
	ctx["appName"] = r.appName
	body, err := raymond.Render(bodyTemplate, ctx)
	if err != nil {
		return "", fmt.Errorf("could not render mail body: %w", err)
	}
	html, err := raymond.Render(layoutTemplate, map[string]any{
		"appName": r.appName,
		"body":    body,
	})
	if err != nil {
		return "", fmt.Errorf("could not render mail layout: %w", err)
	}
	return html, nil
}

// ResetPassword renders the password-reset email. name may be empty.
func (r *Renderer) ResetPassword(name, link string) (subject, html string, err error) {
	html, err = r.render(resetPasswordTemplate, map[string]any{"name": name, "link": link})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Reset your %s password", r.appName), html, nil
}

// Invite renders the tenant invitation email.
func (r *Renderer) Invite(tenantName, link string) (subject, html string, err error) {
	html, err = r.render(inviteTemplate, map[string]any{"tenantName": tenantName, "link": link})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Join %s on %s", tenantName, r.appName), html, nil
}

// Sender delivers rendered mail.
type Sender interface {
	Send(to, subject, html string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds the production sender.
func NewSMTPSender(host string, port int, username, password, from string) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *smtpSender) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("could not send mail to %s: %w", to, err)
	}
	return nil
}
