// Package mail sends best-effort transactional mail through SendGrid. With no
// API key configured every send is a logged no-op, so local development and
// tests never reach the network.
package mail

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/evasion-voyages/voyages-manager/internal/dependency"
)

type Config struct {
	APIKey    string `mapstructure:"sendgrid_api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_email_name"`
}

type Mailer struct {
	cli  *sendgrid.Client
	from *sgmail.Email
}

func New(c Config) dependency.Mailer {
	if c.APIKey == "" {
		slog.Default().Info("mailer disabled: no api key configured")
		return &Mailer{}
	}
	if c.FromEmail == "" {
		c.FromEmail = "contact@evasion-voyages.example"
	}
	if c.FromName == "" {
		c.FromName = "Évasion Voyages"
	}
	return &Mailer{
		cli:  sendgrid.NewSendClient(c.APIKey),
		from: sgmail.NewEmail(c.FromName, c.FromEmail),
	}
}

func (m *Mailer) send(ctx context.Context, to, subject, plainText string) error {
	if m.cli == nil {
		slog.Default().DebugContext(ctx, "mail skipped",
			slog.String("subject", subject),
		)
		return nil
	}
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail("", to), plainText, "")
	resp, err := m.cli.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("can't send mail: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail rejected: status %d", resp.StatusCode)
	}
	slog.Default().InfoContext(ctx, "mail sent",
		slog.String("subject", subject),
	)
	return nil
}

func (m *Mailer) SendNewSubscriber(ctx context.Context, to string) error {
	return m.send(ctx, to,
		"Bienvenue dans la newsletter Évasion Voyages",
		"Merci de votre inscription à notre newsletter. Vous recevrez bientôt nos meilleures offres de voyage.")
}

func (m *Mailer) SendQuoteRequestAck(ctx context.Context, to, reference string) error {
	return m.send(ctx, to,
		"Votre demande de devis a bien été reçue",
		fmt.Sprintf("Nous avons bien reçu votre demande de devis (référence %s). Un conseiller vous recontactera sous 48 heures.", reference))
}
