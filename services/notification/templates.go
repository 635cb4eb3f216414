package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"time"
)

const (
	RegistrationSubject = "Confirm your registration"
	LoginSubject        = "Confirm your new device"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
  <h2 style="color: #333;">{{.Title}}</h2>
  <p style="font-size: 16px; color: #555;">{{.Intro}}</p>
  <div style="text-align: center;">
    <a href="{{.Link}}" style="display: inline-block; margin-top: 20px; padding: 12px 24px; background-color: #268ACA; color: white; text-decoration: none; font-weight: bold; border-radius: 6px;">Confirm</a>
  </div>
  <p style="font-size: 16px; color: #555; text-align: center;">Or enter this code: <strong>{{.Code}}</strong></p>
  <p style="font-size: 14px; color: #999; margin-top: 20px;">This code is valid for {{.Validity}}.</p>
</div>
`))

type verificationView struct {
	Title    string
	Intro    string
	Link     string
	Code     string
	Validity string
}

// VerificationLink appends email and code as query parameters to base.
func VerificationLink(base, email, code string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid verification link base %q: %w", base, err)
	}
	q := u.Query()
	q.Set("email", email)
	q.Set("code", code)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// RenderRegistration builds the body of the sign-up confirmation email.
func RenderRegistration(link, code string, validity time.Duration) (string, error) {
	return render(verificationView{
		Title:    "Confirm your registration",
		Intro:    "Hello,<br />press the button below to finish creating your account.",
		Link:     link,
		Code:     code,
		Validity: humanize(validity),
	})
}

// RenderLogin builds the body of the new-device confirmation email.
func RenderLogin(link, code string, validity time.Duration) (string, error) {
	return render(verificationView{
		Title:    "Confirm your new device",
		Intro:    "Hello,<br />someone signed in to your account from a new device. If it was you, confirm it below.",
		Link:     link,
		Code:     code,
		Validity: humanize(validity),
	})
}

func render(v verificationView) (string, error) {
	var buf bytes.Buffer
	// Intro is trusted static markup.
	data := struct {
		verificationView
		Intro template.HTML
	}{v, template.HTML(v.Intro)}
	if err := verificationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

func humanize(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}
