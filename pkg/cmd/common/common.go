// Package common holds the setup steps shared by all subcommands.
package common

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsrleague/standings-manager-go/log"
	"github.com/fsrleague/standings-manager-go/pkg/config"
	"github.com/fsrleague/standings-manager-go/pkg/db/postgres"
	"github.com/fsrleague/standings-manager-go/pkg/utils"
)

func SetupLogging() {
	cfg := log.DefaultConfig()
	if config.LogConfig != "" {
		loaded, err := log.LoadConfig(config.LogConfig)
		if err == nil {
			cfg = loaded
		} else {
			log.Warn("could not load log config", log.ErrorField(err))
		}
	}
	log.InitLoggerManager(cfg, config.LogLevel, config.LogFormat)
}

// ConnectDB waits for the database and opens the pool. The sql logger gets
// its own name so its level can be tuned via the log config.
func ConnectDB() *pgxpool.Pool {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err := utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}
	sqlLogger := log.GetLoggerManager().GetLoggerByName("sql")
	return postgres.InitWithURL(config.DB, postgres.WithTracer(sqlLogger.Sugar()))
}
