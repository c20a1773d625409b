// Package daemon wires configuration, database, and web service together.
package daemon

import (
	"fmt"

	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/config"
	"github.com/callboard/callboard/internal/db/dsn"
	"github.com/callboard/callboard/internal/db/models"
	"github.com/callboard/callboard/internal/logger"
	"github.com/callboard/callboard/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go func() {
		if err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port)); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.Event{},
		&models.AvailabilityRequest{},
		&models.AvailabilityResponse{},
		&models.EventAssignment{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}
