package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

// Mailer renders HTML templates and delivers them through the Resend API,
// falling back to plain SMTP when the API fails or is not configured.
type Mailer struct {
	resend  *resendClient
	from    string
	adminTo string
	tmpl    *template.Template
}

func NewMailer() *Mailer {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Stripy <orders@stripy.rs>"
	}
	adminTo := os.Getenv("ORDER_NOTIFY_EMAIL")
	if adminTo == "" {
		adminTo = "orders@stripy.rs"
	}
	return &Mailer{
		resend:  newResendClient(os.Getenv("RESEND_API_KEY")),
		from:    from,
		adminTo: adminTo,
		tmpl:    template.Must(template.New("email").Funcs(tmplFuncs).Parse(emailTemplates)),
	}
}

var tmplFuncs = template.FuncMap{
	"money": func(cents int64, currency domain.Currency) string {
		return fmt.Sprintf("%.2f %s", float64(cents)/100.0, currency)
	},
	"line": func(it domain.OrderItem) string {
		return fmt.Sprintf("%s x%d", it.ProductName, it.Quantity)
	},
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, o *domain.Order) error {
	name := "order_confirmation_en"
	subject := "Your Stripy order is confirmed"
	if o.Language == "sr" {
		name = "order_confirmation_sr"
		subject = "Vaša Stripy porudžbina je potvrđena"
	}
	html, err := m.render(name, o)
	if err != nil {
		return err
	}
	return m.deliver(ctx, o.Email, subject, html)
}

func (m *Mailer) SendAdminNotification(ctx context.Context, o *domain.Order) error {
	html, err := m.render("admin_notification", o)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New order %s — %.2f EUR", shortID(o), o.TotalEUR())
	return m.deliver(ctx, m.adminTo, subject, html)
}

func (m *Mailer) SendTest(ctx context.Context, to string) error {
	html, err := m.render("test", nil)
	if err != nil {
		return err
	}
	return m.deliver(ctx, to, "Stripy email test", html)
}

func (m *Mailer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// deliver tries the API first, then SMTP. The caller decides whether a
// delivery failure matters; here we only report it.
func (m *Mailer) deliver(ctx context.Context, to, subject, html string) error {
	err := m.resend.Send(ctx, m.from, to, subject, html)
	if err == nil {
		return nil
	}
	log.Warn().Err(err).Str("to", to).Msg("resend delivery failed, trying smtp")
	if smtpErr := m.sendSMTP(to, subject, html); smtpErr != nil {
		log.Error().Err(smtpErr).Str("to", to).Msg("smtp fallback failed")
		return err
	}
	return nil
}

func (m *Mailer) sendSMTP(to, subject, html string) error {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	if host == "" || portStr == "" || user == "" {
		return fmt.Errorf("smtp not configured")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("smtp port: %w", err)
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return gomail.NewDialer(host, port, user, pass).DialAndSend(msg)
}

func shortID(o *domain.Order) string {
	s := o.ID.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

const emailTemplates = `
{{define "order_confirmation_en"}}
<h2>Thank you for your order!</h2>
<p>Hi {{.Name}}, we received your order and will ship it shortly.</p>
<ul>{{range .Items}}<li>{{line .}} — {{money .UnitPriceCents .Currency}}</li>{{end}}</ul>
<p><strong>Total: {{money .TotalCents .Currency}}</strong></p>
{{if .PromoCode}}<p>Promo code applied: {{.PromoCode}}</p>{{end}}
<p>Shipping to: {{.Address}}, {{.PostalCode}} {{.City}}, {{.Country}}</p>
<p>Breathe easy,<br>the Stripy team</p>
{{end}}

{{define "order_confirmation_sr"}}
<h2>Hvala na porudžbini!</h2>
<p>Zdravo {{.Name}}, primili smo vašu porudžbinu i uskoro je šaljemo.</p>
<ul>{{range .Items}}<li>{{line .}} — {{money .UnitPriceCents .Currency}}</li>{{end}}</ul>
<p><strong>Ukupno: {{money .TotalCents .Currency}}</strong></p>
{{if .PromoCode}}<p>Promo kod: {{.PromoCode}}</p>{{end}}
<p>Dostava na: {{.Address}}, {{.PostalCode}} {{.City}}, {{.Country}}</p>
<p>Dišite lako,<br>Stripy tim</p>
{{end}}

{{define "admin_notification"}}
<h3>New order</h3>
<p>{{.Name}} &lt;{{.Email}}&gt; {{.Phone}}</p>
<ul>{{range .Items}}<li>{{line .}} — {{money .UnitPriceCents .Currency}}</li>{{end}}</ul>
<p><strong>Total: {{money .TotalCents .Currency}}</strong> · payment: {{.PaymentMethod}}</p>
{{if .PromoCode}}<p>Promo code: {{.PromoCode}}</p>{{end}}
<p>{{.Address}}, {{.PostalCode}} {{.City}}, {{.Country}}</p>
{{end}}

{{define "test"}}
<p>Stripy email delivery is working.</p>
{{end}}
`
