package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/fsrleague/standings-manager-go/log"
	"github.com/fsrleague/standings-manager-go/pkg/cmd/common"
	"github.com/fsrleague/standings-manager-go/pkg/config"
	leaguerepos "github.com/fsrleague/standings-manager-go/pkg/repository/league"
	racerepos "github.com/fsrleague/standings-manager-go/pkg/repository/race"
	resultrepos "github.com/fsrleague/standings-manager-go/pkg/repository/result"
	seasonrepos "github.com/fsrleague/standings-manager-go/pkg/repository/season"
	"github.com/fsrleague/standings-manager-go/pkg/service"
)

// short division codes used in the published log file names
var divisionCodes = map[string]string{
	"World Championship": "WC",
	"PRO":                "PRO",
	"Academy":            "ACA",
}

var (
	date  string
	force bool
)

func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "downloads and processes the timing logs of a race day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchLogs(cmd)
		},
	}
	cmd.Flags().StringVar(&date, "date", "",
		"race day to fetch (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&force, "force", false,
		"fetch sessions even when results already exist")
	cmd.Flags().StringVar(&config.LogFileBaseURL, "base-url",
		"http://racefiles.formula-simracing.net",
		"base URL serving the timing log files")
	return cmd
}

//nolint:funlen // sequential fetch steps
func fetchLogs(cmd *cobra.Command) error {
	common.SetupLogging()
	day := time.Now().UTC()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	pool := common.ConnectDB()
	defer pool.Close()
	ingester := service.InitIngestService(pool)

	ctx := cmd.Context()
	races, err := racerepos.LoadByTimeRange(ctx, pool, start, end)
	if err != nil {
		return err
	}
	for _, myRace := range races {
		if myRace.StartTime.After(time.Now().UTC()) {
			continue
		}
		log.Info("found race", log.String("name", myRace.Name))
		mySeason, err := seasonrepos.LoadByID(ctx, pool, myRace.SeasonID)
		if err != nil {
			return err
		}
		division, err := leaguerepos.LoadDivisionByID(ctx, pool, mySeason.DivisionID)
		if err != nil {
			return err
		}
		code, ok := divisionCodes[division.Name]
		if !ok {
			log.Warn("no division code, skipping race",
				log.String("division", division.Name))
			continue
		}

		processedQ, processedR, err := processedSessions(ctx, pool, myRace.ID)
		if err != nil {
			return err
		}
		for _, sessionTag := range []string{"Q", "R"} {
			if !force && (sessionTag == "Q" && processedQ ||
				sessionTag == "R" && processedR) {
				log.Debug("session already processed",
					log.Int("race", myRace.ID), log.String("session", sessionTag))
				continue
			}
			fileName := fmt.Sprintf("%s%s_R%d_%s.xml",
				code, myRace.StartTime.Format("06"), myRace.RoundNumber, sessionTag)
			url := fmt.Sprintf("%s/%s/ResultsReplays/%s/%d-%s/%s",
				config.LogFileBaseURL, mySeason.Name, code,
				myRace.RoundNumber, myRace.ShortName, fileName)

			data, err := download(ctx, url)
			if err != nil {
				log.Warn("log file not available",
					log.String("url", url), log.ErrorField(err))
				continue
			}
			summary, err := ingester.Ingest(ctx, myRace.ID, data)
			if err != nil {
				return err
			}
			cmd.Printf("processed %s: %s session, %d drivers\n",
				fileName, summary.Session, summary.Drivers)
		}
	}
	return nil
}

// processedSessions reports whether the race already carries qualifying or
// race data.
func processedSessions(
	ctx context.Context,
	pool *pgxpool.Pool,
	raceID int,
) (hasQualify, hasRace bool, err error) {
	results, err := resultrepos.LoadByRace(ctx, pool, raceID)
	if err != nil {
		return false, false, err
	}
	for _, res := range results {
		if res.QualifyingLaps > 0 || res.QualifyingTime > 0 {
			hasQualify = true
		}
		if res.RaceLaps > 0 {
			hasRace = true
		}
	}
	return hasQualify, hasRace, nil
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotModified {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
