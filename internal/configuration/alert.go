package configuration

type AlertConfig struct {
	Enabled bool          `json:"enabled"`
	Mailgun MailgunConfig `json:"mailgun"`
}

type MailgunConfig struct {
	Domain string `json:"domain"`
	ApiKey string `json:"apiKey"`
	Sender string `json:"sender"`
	// Recipients of emergency notifications.
	Recipients []string `json:"recipients"`
}
