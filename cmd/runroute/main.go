package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/runroute"
	"github.com/theoremus-urban-solutions/runroute/config"
	"github.com/theoremus-urban-solutions/runroute/formatter"
	"github.com/theoremus-urban-solutions/runroute/geo"
	"github.com/theoremus-urban-solutions/runroute/graphhopper"
	"github.com/theoremus-urban-solutions/runroute/instructions"
	"github.com/theoremus-urban-solutions/runroute/internal/logging"
	"github.com/theoremus-urban-solutions/runroute/providers"
	"github.com/theoremus-urban-solutions/runroute/replay"
	"github.com/theoremus-urban-solutions/runroute/route"
	"github.com/theoremus-urban-solutions/runroute/search"
	"github.com/theoremus-urban-solutions/runroute/shelter"
	"github.com/theoremus-urban-solutions/runroute/tracking"
	"github.com/theoremus-urban-solutions/runroute/utils"
)

func main() {
	mode := flag.String("mode", "serve", "serve|search|plan|replay")
	configPath := flag.String("config", "", "config file (default: config.yml or ./config/config.yml)")
	lat := flag.Float64("lat", 0, "start latitude (search)")
	lng := flag.Float64("lng", 0, "start longitude (search)")
	distance := flag.Float64("distance", 5000, "target route length in meters (search)")
	landmark := flag.String("landmark", "", "landmark as lat,lng the route must pass (search)")
	sheltered := flag.Bool("sheltered", false, "prefer sheltered paths (search)")
	routeSrc := flag.String("route", "", "route GPX or .gob index, path or URL (plan, replay)")
	trackSrc := flag.String("track", "", "recorded GPX track, path or URL (replay)")
	speedup := flag.Float64("speedup", 0, "replay in real time divided by this factor, 0 for as fast as possible")
	out := flag.String("out", "", "output file; .gpx writes GPX, .gob caches the route index (plan)")
	flag.Parse()

	logger := logging.InitLogging()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "serve":
		routing, shelterProvider := newProviders(cfg, logger)
		srv := runroute.NewServer(cfg, routing, shelterProvider, runroute.WithServerLogger(logger))
		stop()
		srv.StartServer()
		srv.HandleGracefulShutdown()
	case "search":
		err = runSearch(ctx, cfg, logger, searchFlags{
			start:     geo.GeoPoint{Latitude: *lat, Longitude: *lng},
			distance:  *distance,
			landmark:  *landmark,
			sheltered: *sheltered,
			out:       *out,
		})
	case "plan":
		err = runPlan(ctx, *routeSrc, *out)
	case "replay":
		err = runReplay(ctx, cfg, logger, *routeSrc, *trackSrc, *speedup, *out)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("command failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the config at path, or the default locations when path is
// empty. A missing default config falls back to built-in defaults.
func loadConfig(path string) (config.AppConfig, error) {
	if path != "" {
		return config.LoadAppConfigFrom(path)
	}
	if err := config.LoadAppConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Parse(nil)
		}
		return config.AppConfig{}, err
	}
	return config.Config, nil
}

// newProviders builds the routing client and, when configured, the shelter
// client. The shelter provider is nil when no backend is configured.
func newProviders(cfg config.AppConfig, logger *slog.Logger) (providers.RoutingProvider, providers.ShelterProvider) {
	ghOpts := []graphhopper.Option{graphhopper.WithLogger(logger)}
	if t := cfg.GraphHopper.Timeout(); t > 0 {
		ghOpts = append(ghOpts, graphhopper.WithHTTPClient(&http.Client{Timeout: t}))
	}
	routing := graphhopper.NewClient(cfg.GraphHopper.BaseURL, cfg.GraphHopper.APIKey, ghOpts...)

	if cfg.Shelter.BaseURL == "" {
		return routing, nil
	}
	shOpts := []shelter.Option{shelter.WithLogger(logger)}
	if t := cfg.Shelter.Timeout(); t > 0 {
		shOpts = append(shOpts, shelter.WithHTTPClient(&http.Client{Timeout: t}))
	}
	return routing, shelter.NewClient(cfg.Shelter.BaseURL, cfg.Shelter.Token, shOpts...)
}

type searchFlags struct {
	start     geo.GeoPoint
	distance  float64
	landmark  string
	sheltered bool
	out       string
}

func runSearch(ctx context.Context, cfg config.AppConfig, logger *slog.Logger, f searchFlags) error {
	req := search.Request{Start: f.start, Target: f.distance, Sheltered: f.sheltered}
	if f.landmark != "" {
		lm, err := parseLatLng(f.landmark)
		if err != nil {
			return err
		}
		req.Landmark = &lm
	}

	routing, shelterProvider := newProviders(cfg, logger)
	s := search.New(routing, shelterProvider, cfg.Search.ToSearch(cfg.GraphHopper.Profile), search.WithLogger(logger))
	set, err := s.Search(ctx, req)
	if err != nil {
		return err
	}
	for i, c := range set.Candidates {
		logger.Info("candidate",
			"rank", i+1,
			"id", c.ID,
			"distance", utils.PresentableDistance(c.Distance),
			"covered", utils.PresentableDistance(c.CoveredDistance))
	}

	var buf []byte
	if isGPX(f.out) {
		buf, err = formatter.CandidateSetGPX(set)
	} else {
		buf, err = formatter.CandidateSetJSON(set, time.Now())
	}
	if err != nil {
		return err
	}
	return writeOutput(f.out, buf)
}

func runPlan(ctx context.Context, src, out string) error {
	idx, err := newFetcher().route(ctx, src)
	if err != nil {
		return err
	}
	switch {
	case strings.EqualFold(filepath.Ext(out), ".gob"):
		return route.SerializeIndexToFile(idx, out)
	case isGPX(out):
		buf, err := formatter.PolylineGPX(strings.TrimSuffix(filepath.Base(out), filepath.Ext(out)), idx.Points)
		if err != nil {
			return err
		}
		return writeOutput(out, buf)
	default:
		buf, err := formatter.InstructionsJSON(idx, time.Now())
		if err != nil {
			return err
		}
		return writeOutput(out, buf)
	}
}

func runReplay(ctx context.Context, cfg config.AppConfig, logger *slog.Logger, routeSrc, trackSrc string, speedup float64, out string) error {
	f := newFetcher()
	idx, err := f.route(ctx, routeSrc)
	if err != nil {
		return err
	}
	samples, err := f.track(ctx, trackSrc)
	if err != nil {
		return err
	}

	tcfg := cfg.Tracking.ToTracker()
	tr := tracking.NewTracker(idx, instructions.Generate(idx.Points), tcfg, tracking.WithLogger(logger))
	if err := tr.Start(ctx, &replay.TrackProvider{Samples: samples}); err != nil {
		return err
	}
	if !tracking.NearStart(samples[0].Position, idx, tcfg) {
		logger.Warn("track does not begin near the route start")
	}

	var summary *tracking.RunSummary
	session := tracking.NewSession(tr,
		tracking.OnUpdate(func(u tracking.Update) {
			if !u.Accepted {
				logger.Debug("sample rejected", "reason", u.Reason)
				return
			}
			logger.Info("guidance",
				"instruction", u.Instruction.Text,
				"progress", utils.Progress(u.State.RouteProgressPercent),
				"off_route", u.State.IsOffRoute)
		}),
		tracking.OnComplete(func(r tracking.RunSummary) { summary = &r }),
	)

	var opts []replay.Option
	if speedup > 0 {
		opts = append(opts, replay.WithSpeedup(speedup))
	}
	if err := replay.Run(ctx, session, samples, opts...); err != nil {
		return err
	}
	if summary == nil {
		s := tr.Summary()
		summary = &s
		logger.Warn("track ended before the run finished", "progress", utils.Progress(tr.State().RouteProgressPercent))
	}

	var buf []byte
	if isGPX(out) {
		buf, err = formatter.RunGPX(*summary)
	} else {
		buf, err = formatter.RunSummaryJSON(*summary)
	}
	if err != nil {
		return err
	}
	return writeOutput(out, buf)
}

func parseLatLng(s string) (geo.GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.GeoPoint{}, fmt.Errorf("invalid point %q, want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.GeoPoint{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return geo.GeoPoint{Latitude: lat, Longitude: lng}, nil
}

func isGPX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gpx")
}

func writeOutput(path string, buf []byte) error {
	if path == "" {
		fmt.Println(string(buf))
		return nil
	}
	return os.WriteFile(path, buf, 0o644)
}
