package config

type NotificationsConfig struct {
	// Detailed sends one embed per reported file instead of a single
	// summary embed.
	Detailed     bool                `koanf:"detailed"`
	SkipEmptyRun bool                `koanf:"skip_empty_run"`
	Service      NotificationService `koanf:"service"`
}

type NotificationService struct {
	Discord string `koanf:"discord"`
}
