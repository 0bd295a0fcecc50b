package config

// EmailConfig defines the SMTP account used to deliver notifications and the
// single recipient address.
type EmailConfig struct {
	Enabled            bool   `json:"enabled" yaml:"enabled"`
	NotifyEmailAddress string `json:"notify_email_address,omitempty" yaml:"notify_email_address,omitempty" validate:"required_if=Enabled true,omitempty,email"`
	EmailAddress       string `json:"email_address,omitempty" yaml:"email_address,omitempty" validate:"required_if=Enabled true,omitempty,email"`
	Password           string `json:"password,omitempty" yaml:"password,omitempty" validate:"required_if=Enabled true"`
	SMTPServer         string `json:"smtp_server,omitempty" yaml:"smtp_server,omitempty" validate:"required_if=Enabled true,omitempty,hostname|ip"`
	Port               int    `json:"port,omitempty" yaml:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	UseSSL             bool   `json:"use_ssl" yaml:"use_ssl"`
	VerifyOnStartup    bool   `json:"verify_on_startup" yaml:"verify_on_startup"`
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	Subject            string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// NewDefaultEmailConfig creates default email configuration
func NewDefaultEmailConfig() EmailConfig {
	return EmailConfig{
		Enabled:         true,
		Port:            DefaultEmailPort,
		UseSSL:          true,
		VerifyOnStartup: true,
		TimeoutSeconds:  DefaultEmailTimeoutSecs,
		Subject:         DefaultEmailSubject,
	}
}

// DiscordConfig defines an optional Discord webhook that receives the same
// notifications as the email recipient.
type DiscordConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"required_if=Enabled true,omitempty,url"`
	AvatarURL  string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty" validate:"omitempty,url"`
}

// NewDefaultDiscordConfig creates default discord configuration
func NewDefaultDiscordConfig() DiscordConfig {
	return DiscordConfig{}
}
