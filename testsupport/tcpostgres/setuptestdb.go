//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fsrleague/standings-manager-go/pkg/db/migrate"
	database "github.com/fsrleague/standings-manager-go/pkg/db/postgres"
)

// create a pg connection pool for the standings testdatabase
func SetupTestDB() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("standings-manager-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	if err = migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}

	pool := database.InitWithURL(dbURL)
	return pool
}

// SetupExternalTestDB connects to the database named by TESTDB_URL and runs
// the migrations there. Used on CI where a database service is provided.
func SetupExternalTestDB() *pgxpool.Pool {
	dbURL := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbURL)
}

func ClearResultTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from lap")
	pool.Exec(context.Background(), "delete from result")
}

func ClearStatsTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from season_stats")
	pool.Exec(context.Background(), "delete from track_record")
	pool.Exec(context.Background(), "delete from sort_criteria")
	pool.Exec(context.Background(), "delete from season_penalty")
}

func ClearRaceTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from race")
}

func ClearSeasonTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from season")
}

func ClearCompetitorTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from driver")
	pool.Exec(context.Background(), "delete from team")
}

func ClearLeagueTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from division")
	pool.Exec(context.Background(), "delete from league")
}

func ClearConfigTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from point_system")
	pool.Exec(context.Background(), "delete from track")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearStatsTables(pool)
	ClearResultTables(pool)
	ClearRaceTable(pool)
	ClearSeasonTable(pool)
	ClearCompetitorTables(pool)
	ClearConfigTables(pool)
	ClearLeagueTables(pool)
}
