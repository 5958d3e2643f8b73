package restserver

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/wdvr/snowscore/internal/scoring"
	"github.com/wdvr/snowscore/internal/types"
	"github.com/wdvr/snowscore/pkg/config"
	"github.com/wdvr/snowscore/pkg/solar"
)

// seriesLookbackHours is how much history each quality computation
// needs: the rolling windows plus the full freeze-thaw lookback.
const seriesLookbackHours = scoring.MinHistoryHours + scoring.MaxFreezeThawLookbackHours

// resortSummary is the list shape returned by GET /api/resorts.
type resortSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Elevations []string `json:"elevations"`
}

// qualityResponse is the shape returned by GET /api/resorts/{id}/quality.
type qualityResponse struct {
	ResortID    string                                     `json:"resort_id"`
	Name        string                                     `json:"name"`
	ScoringHour time.Time                                  `json:"scoring_hour"`
	Levels      map[types.ElevationLevel]types.ScoreResult `json:"levels"`
	Aggregate   types.ScoreResult                          `json:"aggregate"`
}

// GetHealth returns a basic health response
func (c *Controller) GetHealth(w http.ResponseWriter, req *http.Request) {
	c.formatter.WriteResponse(w, req, map[string]string{"status": "ok"}, nil)
}

// GetResorts lists the configured resorts and their elevation points
func (c *Controller) GetResorts(w http.ResponseWriter, req *http.Request) {
	summaries := make([]resortSummary, 0, len(c.resorts))
	for _, resort := range c.resorts {
		s := resortSummary{ID: resort.ID, Name: resort.Name}
		for _, ep := range resort.Elevations {
			s.Elevations = append(s.Elevations, ep.Level)
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })

	c.formatter.WriteResponse(w, req, summaries, nil)
}

// GetResortQuality scores every elevation point of a resort for the
// midday scoring hour and returns the per-level and aggregated
// results. Levels whose history is too short come back as unknown;
// they are excluded from the aggregate.
func (c *Controller) GetResortQuality(w http.ResponseWriter, req *http.Request) {
	resort, ok := c.resorts[mux.Vars(req)["id"]]
	if !ok {
		c.formatter.WriteError(w, req, http.StatusNotFound, "unknown resort")
		return
	}

	loc := time.UTC
	if resort.Timezone != "" {
		if l, err := time.LoadLocation(resort.Timezone); err == nil {
			loc = l
		} else {
			c.logger.Warnf("resort %s has invalid timezone %q, using UTC", resort.ID, resort.Timezone)
		}
	}

	day := time.Now().In(loc)
	if d := req.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, loc)
		if err != nil {
			c.formatter.WriteError(w, req, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}
	scoringHour := solar.ScoringHour(day, resort.Longitude, loc)

	levels := make(map[types.ElevationLevel]types.Series, len(resort.Elevations))
	for _, ep := range resort.Elevations {
		series, err := c.store.GetHourlySeries(req.Context(), ep.StationName, scoringHour, seriesLookbackHours)
		if err != nil {
			c.logger.Errorf("fetching series for station %q: %v", ep.StationName, err)
			c.formatter.WriteError(w, req, http.StatusBadGateway, "observation store unavailable")
			return
		}
		applyElevation(series, ep)
		levels[types.ElevationLevel(ep.Level)] = series
	}

	score := c.engine.ScoreResort(levels, scoringHour)

	c.formatter.WriteResponse(w, req, qualityResponse{
		ResortID:    resort.ID,
		Name:        resort.Name,
		ScoringHour: scoringHour,
		Levels:      score.Levels,
		Aggregate:   score.Aggregate,
	}, nil)
}

// applyElevation backfills the configured elevation on series whose
// station metadata does not carry one.
func applyElevation(series types.Series, ep config.ElevationPointData) {
	for i := range series {
		if series[i].ElevationM == 0 {
			series[i].ElevationM = ep.ElevationM
		}
	}
}
