// Package restserver exposes the snow quality scores over HTTP. This
// is the boundary the mobile apps and website call; they cache and
// render the values, the server only computes them.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wdvr/snowscore/internal/scoring"
	"github.com/wdvr/snowscore/internal/types"
	"github.com/wdvr/snowscore/pkg/config"
	"github.com/wdvr/snowscore/pkg/responseformat"
)

// SeriesStore supplies the ordered hourly history for a station. The
// observation database client implements it; tests substitute fakes.
type SeriesStore interface {
	GetHourlySeries(ctx context.Context, stationName string, endHour time.Time, lookbackHours int) (types.Series, error)
}

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	httpConfig config.HTTPData
	Server     http.Server
	store      SeriesStore
	engine     *scoring.Engine
	resorts    map[string]config.ResortData
	formatter  *responseformat.Formatter
	logger     *zap.SugaredLogger
}

// NewController creates a new REST server controller
func NewController(
	ctx context.Context,
	wg *sync.WaitGroup,
	configProvider config.ConfigProvider,
	httpConfig config.HTTPData,
	store SeriesStore,
	engine *scoring.Engine,
	logger *zap.SugaredLogger,
) (*Controller, error) {
	resorts, err := configProvider.GetResorts()
	if err != nil {
		return nil, fmt.Errorf("error loading resorts: %w", err)
	}
	if len(resorts) == 0 {
		return nil, fmt.Errorf("no resorts configured - at least one resort must be configured for the REST server")
	}

	byID := make(map[string]config.ResortData, len(resorts))
	for _, resort := range resorts {
		byID[resort.ID] = resort
	}

	return &Controller{
		ctx:        ctx,
		wg:         wg,
		httpConfig: httpConfig,
		store:      store,
		engine:     engine,
		resorts:    byID,
		formatter:  responseformat.NewFormatter(),
		logger:     logger,
	}, nil
}

// Start launches the HTTP server and blocks until it is listening. The
// server shuts down gracefully when the controller context is
// cancelled.
func (c *Controller) Start() error {
	router := mux.NewRouter()
	router.Use(c.requestLogger)

	router.HandleFunc("/api/health", c.GetHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/resorts", c.GetResorts).Methods(http.MethodGet)
	router.HandleFunc("/api/resorts/{id}/quality", c.GetResortQuality).Methods(http.MethodGet)

	listenAddr := fmt.Sprintf("%s:%d", c.httpConfig.ListenAddr, c.httpConfig.Port)
	c.Server = http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.logger.Infof("REST server listening on %s", listenAddr)
		if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			c.logger.Errorf("REST server shutdown error: %v", err)
		}
	}()

	return nil
}
