package config

import (
	"github.com/callboard/callboard/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Account   Account
	Webserver Webserver
}

// Account implements account lifecycle settings.
type Account struct {
	// GraceWindowDays is how many days a soft-deleted account may still
	// reactivate by authenticating. Defaults to DefaultGraceWindowDays.
	GraceWindowDays int
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // base url for the webserver
}
