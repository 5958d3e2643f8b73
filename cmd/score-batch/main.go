// score-batch scores every configured resort directly against the
// observation database and prints the results, for operators checking
// model behavior outside the service. Resorts are scored concurrently
// with a bounded worker pool.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/wdvr/snowscore/internal/scoring"
	"github.com/wdvr/snowscore/internal/types"
	"github.com/wdvr/snowscore/pkg/config"
	"github.com/wdvr/snowscore/pkg/model"
	"github.com/wdvr/snowscore/pkg/solar"
)

const lookbackHours = scoring.MinHistoryHours + scoring.MaxFreezeThawLookbackHours

// resortResult is one scored resort, ready for printing
type resortResult struct {
	Resort      config.ResortData
	ScoringHour time.Time
	Score       types.ResortScore
	Err         error
}

func main() {
	var (
		dbHost    = flag.String("db-host", "localhost", "Database host")
		dbPort    = flag.Int("db-port", 5432, "Database port")
		dbUser    = flag.String("db-user", "postgres", "Database user")
		dbPass    = flag.String("db-pass", "", "Database password")
		dbName    = flag.String("db-name", "weather", "Database name")
		cfgFile   = flag.String("config", "config.yaml", "Path to YAML configuration")
		modelPath = flag.String("model", "", "Model artifact path (default: from config)")
		date      = flag.String("date", "", "Scoring date as YYYY-MM-DD (default: today)")
		workers   = flag.Int("workers", 4, "Number of concurrent scoring workers")
		csvOutput = flag.String("csv", "", "Optional CSV output file path")
	)
	flag.Parse()

	cfg, err := config.NewYAMLProvider(*cfgFile).LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	path := cfg.Model.Path
	if *modelPath != "" {
		path = *modelPath
	}
	artifact, err := model.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model artifact: %v\n", err)
		os.Exit(1)
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		*dbHost, *dbPort, *dbUser, *dbPass, *dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "Error pinging database: %v\n", err)
		os.Exit(1)
	}

	day := time.Now()
	if *date != "" {
		day, err = time.Parse("2006-01-02", *date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			os.Exit(1)
		}
	}

	engine := scoring.NewEngine(artifact.Stats, artifact.Weights, zap.NewNop().Sugar())

	fmt.Printf("Snow Quality Batch Scoring\n")
	fmt.Printf("==========================\n\n")
	fmt.Printf("Model artifact: %s (version %s)\n", path, artifact.Version)
	fmt.Printf("Resorts: %d, workers: %d\n\n", len(cfg.Resorts), *workers)

	results := scoreAll(context.Background(), db, engine, cfg.Resorts, day, *workers)

	printResults(results)

	if *csvOutput != "" {
		if err := writeCSV(*csvOutput, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", *csvOutput)
	}
}

// scoreAll runs the resorts through a bounded worker pool. Each resort
// is independent; ordering is restored afterward for printing.
func scoreAll(ctx context.Context, db *sql.DB, engine *scoring.Engine, resorts []config.ResortData, day time.Time, workers int) []resortResult {
	jobs := make(chan config.ResortData)
	results := make([]resortResult, 0, len(resorts))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for resort := range jobs {
				result := scoreResort(ctx, db, engine, resort, day)
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, resort := range resorts {
		jobs <- resort
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Resort.ID < results[j].Resort.ID })
	return results
}

func scoreResort(ctx context.Context, db *sql.DB, engine *scoring.Engine, resort config.ResortData, day time.Time) resortResult {
	loc := time.UTC
	if resort.Timezone != "" {
		if l, err := time.LoadLocation(resort.Timezone); err == nil {
			loc = l
		}
	}
	scoringHour := solar.ScoringHour(day, resort.Longitude, loc)

	levels := make(map[types.ElevationLevel]types.Series, len(resort.Elevations))
	for _, ep := range resort.Elevations {
		series, err := fetchHourlySeries(ctx, db, ep.StationName, scoringHour)
		if err != nil {
			return resortResult{Resort: resort, ScoringHour: scoringHour, Err: err}
		}
		for i := range series {
			if series[i].ElevationM == 0 {
				series[i].ElevationM = ep.ElevationM
			}
		}
		levels[types.ElevationLevel(ep.Level)] = series
	}

	return resortResult{
		Resort:      resort,
		ScoringHour: scoringHour,
		Score:       engine.ScoreResort(levels, scoringHour),
	}
}

func fetchHourlySeries(ctx context.Context, db *sql.DB, stationName string, endHour time.Time) (types.Series, error) {
	query := `
		SELECT time, temp_c, snowfall_cm, elevation_m
		FROM hourly_observations
		WHERE stationname = $1 AND time >= $2 AND time <= $3
		ORDER BY time
	`
	startHour := endHour.Add(-time.Duration(lookbackHours) * time.Hour)

	rows, err := db.QueryContext(ctx, query, stationName, startHour, endHour)
	if err != nil {
		return nil, fmt.Errorf("query failed for station %q: %w", stationName, err)
	}
	defer rows.Close()

	var series types.Series
	for rows.Next() {
		var s types.HourlySample
		if err := rows.Scan(&s.Time, &s.TempC, &s.SnowfallCM, &s.ElevationM); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

func printResults(results []resortResult) {
	fmt.Printf("%-20s %-22s %-8s %-8s %-8s %-10s %s\n", "Resort", "Scoring Hour", "Base", "Mid", "Top", "Aggregate", "Quality")

	var aggregates []float64
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-20s error: %v\n", r.Resort.ID, r.Err)
			continue
		}
		fmt.Printf("%-20s %-22s %-8s %-8s %-8s %-10s %s\n",
			r.Resort.ID,
			r.ScoringHour.Format("2006-01-02 15:04 MST"),
			formatLevel(r.Score.Levels, types.ElevationBase),
			formatLevel(r.Score.Levels, types.ElevationMid),
			formatLevel(r.Score.Levels, types.ElevationTop),
			formatScore(r.Score.Aggregate),
			r.Score.Aggregate.Level,
		)
		if r.Score.Aggregate.Level != types.QualityUnknown {
			aggregates = append(aggregates, r.Score.Aggregate.Score)
		}
	}

	if len(aggregates) > 1 {
		mean := stat.Mean(aggregates, nil)
		stddev := stat.StdDev(aggregates, nil)
		fmt.Printf("\nScored resorts: %d  mean=%.2f  stddev=%.2f\n", len(aggregates), mean, stddev)
	}
}

func formatLevel(levels map[types.ElevationLevel]types.ScoreResult, level types.ElevationLevel) string {
	result, ok := levels[level]
	if !ok {
		return "-"
	}
	return formatScore(result)
}

func formatScore(result types.ScoreResult) string {
	if result.Level == types.QualityUnknown {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", result.Score)
}

func writeCSV(path string, results []resortResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"resort_id", "scoring_hour", "level", "score", "quality"}); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for level, result := range r.Score.Levels {
			record := []string{
				r.Resort.ID,
				r.ScoringHour.Format(time.RFC3339),
				string(level),
				formatScore(result),
				result.Level.String(),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		record := []string{
			r.Resort.ID,
			r.ScoringHour.Format(time.RFC3339),
			"aggregate",
			formatScore(r.Score.Aggregate),
			r.Score.Aggregate.Level.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
