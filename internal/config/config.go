package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"songgift.db"`
	WebDir      string `env:"WEB_DIR" envDefault:"web"`

	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	Checkout  Checkout  `envPrefix:"CHECKOUT_"`
	Media     Media     `envPrefix:"MEDIA_"`
	Social    Social    `envPrefix:"SOCIAL_"`
	Admin     Admin     `envPrefix:"ADMIN_"`
	SendGrid  SendGrid  `envPrefix:"SENDGRID_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type CORS struct {
	Origins []string `env:"ORIGIN" envSeparator:"," envDefault:"http://localhost:5173"`
}

// RateLimit holds the two named limiter policies: general API traffic and the
// more expensive generation endpoints.
type RateLimit struct {
	GeneralMax       int           `env:"GENERAL_MAX" envDefault:"30"`
	GeneralWindow    time.Duration `env:"GENERAL_WINDOW" envDefault:"60s"`
	GenerationMax    int           `env:"GENERATION_MAX" envDefault:"10"`
	GenerationWindow time.Duration `env:"GENERATION_WINDOW" envDefault:"60s"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
}

type Checkout struct {
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
	NodeID        int64         `env:"NODE_ID" envDefault:"1"`
}

type Media struct {
	BaseURL          string        `env:"BASE_URL" envDefault:"http://localhost:8080/media"`
	VideoRenderDelay time.Duration `env:"VIDEO_RENDER_DELAY" envDefault:"20s"`
}

type Social struct {
	FetchEnabled bool          `env:"FETCH_ENABLED" envDefault:"false"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"5s"`
}

type Admin struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type SendGrid struct {
	APIKey    string `env:"API_KEY"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"no-reply@songgift.local"`
	FromName  string `env:"FROM_NAME" envDefault:"SongGift"`
}
