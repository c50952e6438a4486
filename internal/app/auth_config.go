package app

import (
	"time"

	"github.com/scribehq/scribe/internal/auth"
	"github.com/scribehq/scribe/pkg/mail"
)

// JWTServiceConfig converts AuthConfig into the parameters expected by the JWT service.
func (c AuthConfig) JWTServiceConfig() auth.JWTConfig {
	ttl := c.JWT.TTL
	if ttl <= 0 {
		ttl = auth.DefaultAccessTokenTTL
	}

	return auth.JWTConfig{
		Secret:         c.JWT.Secret,
		Issuer:         c.JWT.Issuer,
		AccessTokenTTL: ttl,
	}
}

// OTPTTL returns the validity window for one-time codes.
func (c AuthConfig) OTPTTL() time.Duration {
	if c.OTP.TTL > 0 {
		return c.OTP.TTL
	}
	return auth.DefaultOTPTTL
}

// MailerSettings converts EmailConfig into the parameters expected by the mailer.
func (c EmailConfig) MailerSettings() mail.SMTPSettings {
	return mail.SMTPSettings{
		Enabled:  c.SMTP.Enabled,
		Host:     c.SMTP.Host,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		From:     c.SMTP.From,
		UseTLS:   c.SMTP.UseTLS,
		Timeout:  c.SMTP.Timeout,
	}
}
