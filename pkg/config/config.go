// Package config loads the application configuration from environment
// variables, optionally seeded from a .env file.
package config

import "time"

// DB holds the Postgres connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Session holds the server-side session settings. The cookie carries only
// the opaque session id.
type Session struct {
	CookieName string        `envconfig:"COOKIE_NAME" default:"abertura_contas_sessao"`
	Expiry     time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Paging holds the fixed page size applied to every listing.
type Paging struct {
	PageSize int `envconfig:"PAGE_SIZE" default:"10"`
}

// Log holds the logger settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[abertura-contas]"`
}

// App is the root configuration.
type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Server  *Server  `envconfig:"SERVER"`
	Log     *Log     `envconfig:"LOG"`
	DB      *DB      `envconfig:"DATABASE"`
	Session *Session `envconfig:"SESSION"`
	Paging  *Paging  `envconfig:"PAGING"`
}
