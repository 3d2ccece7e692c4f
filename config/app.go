package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	RedisURL string `env:"REDIS_URL"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER"`

	MailAPIURL   string `env:"MAIL_API_URL"`
	MailAPIKey   string `env:"MAIL_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" default:"no-reply@carrental.local"`
	ContactInbox string `env:"CONTACT_INBOX"`

	RendererURL string `env:"RENDERER_URL"`
	RendererKey string `env:"RENDERER_API_KEY"`

	SignatureCity string `env:"SIGNATURE_CITY" default:"San Salvador"`
}
