package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// EmailNotifier sends plain-text messages over SMTP to a single recipient
type EmailNotifier struct {
	cfg    config.EmailConfig
	logger zerolog.Logger
}

// NewEmailNotifier creates an EmailNotifier. No connection is made until
// Send or Verify is called.
func NewEmailNotifier(cfg config.EmailConfig, logger zerolog.Logger) (*EmailNotifier, error) {
	if cfg.SMTPServer == "" {
		return nil, common.NewValidationError("smtp_server", cfg.SMTPServer, "SMTP server cannot be empty")
	}
	if cfg.NotifyEmailAddress == "" {
		return nil, common.NewValidationError("notify_email_address", cfg.NotifyEmailAddress, "recipient cannot be empty")
	}
	if cfg.Subject == "" {
		cfg.Subject = config.DefaultEmailSubject
	}
	if cfg.Port == 0 {
		cfg.Port = config.DefaultEmailPort
	}

	return &EmailNotifier{
		cfg:    cfg,
		logger: logger.With().Str("component", "EmailNotifier").Logger(),
	}, nil
}

func (n *EmailNotifier) newClient() (*mail.Client, error) {
	timeout := time.Duration(n.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultEmailTimeoutSecs * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.EmailAddress),
		mail.WithPassword(n.cfg.Password),
		mail.WithTimeout(timeout),
	}
	if n.cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(n.cfg.SMTPServer, opts...)
	if err != nil {
		return nil, common.WrapError(err, "failed to create SMTP client")
	}
	return client, nil
}

func (n *EmailNotifier) newMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(n.cfg.EmailAddress); err != nil {
		return nil, common.WrapError(err, "invalid sender address")
	}
	if err := m.To(n.cfg.NotifyEmailAddress); err != nil {
		return nil, common.WrapError(err, "invalid recipient address")
	}

	subject := msg.Subject
	if subject == "" {
		subject = n.cfg.Subject
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

// Send delivers msg to the configured recipient
func (n *EmailNotifier) Send(ctx context.Context, msg Message) error {
	m, err := n.newMessage(msg)
	if err != nil {
		return err
	}
	client, err := n.newClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		n.logger.Error().Err(err).Str("server", n.cfg.SMTPServer).Msg("Unable to send email")
		return common.NewNetworkError(n.serverAddress(), "failed to send email", err)
	}

	n.logger.Debug().Str("recipient", n.cfg.NotifyEmailAddress).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

// Verify connects and authenticates to the SMTP server without sending.
func (n *EmailNotifier) Verify(ctx context.Context) error {
	client, err := n.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return common.NewNetworkError(n.serverAddress(), "unable to connect to email account", err)
	}
	if err := client.Close(); err != nil {
		n.logger.Debug().Err(err).Msg("Failed to close SMTP connection after verification")
	}

	n.logger.Info().Str("server", n.serverAddress()).Msg("Email account verified")
	return nil
}

func (n *EmailNotifier) serverAddress() string {
	return fmt.Sprintf("%s:%d", n.cfg.SMTPServer, n.cfg.Port)
}
