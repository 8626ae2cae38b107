package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"distance-calculator/internal/adapters/cache"
	"distance-calculator/internal/adapters/geocode"
	"distance-calculator/internal/adapters/route"
	"distance-calculator/internal/bulk"
	"distance-calculator/internal/config"
	"distance-calculator/internal/csvio"
	"distance-calculator/internal/domain"
	"distance-calculator/internal/export"
	"distance-calculator/internal/platform/db"
	"distance-calculator/internal/platform/obs"
	"distance-calculator/internal/ports"
	"distance-calculator/internal/services"
	"distance-calculator/internal/watch"
)

// main is the application composition root. It wires concrete adapters
// (Nominatim, OSRM, the configured cache backend) behind ports and dispatches
// to the single-pair, bulk, or watch surface.
func main() {
	var (
		inputPath  = flag.String("input", "", "CSV file to process in bulk")
		outputPath = flag.String("output", "", "output file (default: distances_<mode>_<timestamp>.<format>)")
		modeFlag   = flag.String("mode", "air", "travel mode: air or road")
		format     = flag.String("format", "csv", "output format: csv or xlsx")
		fromFlag   = flag.String("from", "", "single-pair: origin name or lat,lon")
		toFlag     = flag.String("to", "", "single-pair: destination name or lat,lon")
		watchDir   = flag.String("watch", "", "process every CSV dropped into this directory")
	)
	flag.Parse()

	cfg := config.Load()

	mode := domain.TravelMode(*modeFlag)
	if !mode.Valid() {
		log.Fatalf("unknown mode %q (want air or road)", *modeFlag)
	}
	if *format != "csv" && *format != "xlsx" {
		log.Fatalf("unknown format %q (want csv or xlsx)", *format)
	}

	geocodeCache, routeCache, closeCaches, err := buildCaches(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCaches()

	geocoder := services.NewGeocoder(
		geocode.NewNominatimProvider(cfg.GeocodeBaseURL, cfg.UserAgent),
		geocodeCache,
		cfg.GeocodeRetries,
		cfg.GeocodeBackoff,
	)
	router := services.NewRouter(route.NewOSRMProvider(cfg.RouteBaseURL), routeCache)

	pipeline := &bulk.Pipeline{
		Geocoder:   geocoder,
		Router:     router,
		BatchSize:  cfg.GeocodeBatchSize,
		BatchDelay: cfg.GeocodeBatchDelay,
		RouteDelay: cfg.RouteDelay,
		OnProgress: logProgress,
	}

	// Ctrl-C cancels the active run; in-flight requests are aborted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithRunID(ctx, uuid.NewString())

	switch {
	case *watchDir != "":
		w := watch.New(pipeline, mode, cfg.OutputDir, *format)
		if err := w.Start(ctx, *watchDir); err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
	case *inputPath != "":
		if err := runBulk(ctx, pipeline, mode, *inputPath, *outputPath, *format); err != nil {
			log.Fatal(err)
		}
	case *fromFlag != "" && *toFlag != "":
		if err := runPair(ctx, geocoder, router, mode, *fromFlag, *toFlag); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runBulk(ctx context.Context, pipeline *bulk.Pipeline, mode domain.TravelMode, inputPath, outputPath, format string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input %q: %w", inputPath, err)
	}
	defer f.Close()

	results, err := pipeline.ProcessFile(ctx, f, mode)
	if err != nil {
		return err
	}

	headers := bulk.OutputHeaders(mode, results)
	rows := bulk.OutputRows(mode, results)

	if outputPath == "" {
		outputPath = bulk.OutputFileName(mode, format, time.Now())
	}

	if format == "xlsx" {
		if err := export.WriteXLSX(outputPath, headers, rows); err != nil {
			return err
		}
	} else {
		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output %q: %w", outputPath, err)
		}
		defer out.Close()
		if err := csvio.Write(out, headers, rows); err != nil {
			return err
		}
	}

	log.Printf("wrote %d rows to %s", len(rows), outputPath)
	return nil
}

func runPair(ctx context.Context, geocoder *services.Geocoder, router *services.Router, mode domain.TravelMode, fromArg, toArg string) error {
	from, err := resolveArg(ctx, geocoder, fromArg)
	if err != nil {
		return fmt.Errorf("resolve origin: %w", err)
	}
	to, err := resolveArg(ctx, geocoder, toArg)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	km := domain.GreatCircleKm(from, to)
	fmt.Printf("air distance:   %.2f km (%.2f miles), ~%.1f h flight\n",
		km, domain.KmToMiles(km), domain.FlightHours(km))

	if mode == domain.ModeRoad {
		r, ok := router.Route(ctx, from, to)
		if !ok {
			fmt.Println("road distance:  not available")
			return nil
		}
		fmt.Printf("road distance:  %.2f km (%.2f miles), ~%.0f min driving\n",
			r.DistanceKm, domain.KmToMiles(r.DistanceKm), r.DurationMin)
	}

	return nil
}

// resolveArg accepts either a "lat,lon" literal or a free-text name.
func resolveArg(ctx context.Context, geocoder *services.Geocoder, arg string) (domain.Coordinates, error) {
	if c, ok := parseLatLon(arg); ok {
		return c, nil
	}

	c, ok := geocoder.Geocode(ctx, arg)
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("could not geocode %q", arg)
	}
	return c, nil
}

func parseLatLon(s string) (domain.Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, true
}

// buildCaches constructs the configured cache backend pair plus a cleanup.
func buildCaches(cfg config.Config) (ports.GeocodeCache, ports.RouteCache, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case "memory":
		return cache.NewMemoryGeocodeCache(), cache.NewMemoryRouteCache(), noop, nil

	case "sqlite":
		sdb, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := cache.InitSqliteSchema(sdb); err != nil {
			sdb.Close()
			return nil, nil, noop, err
		}
		return cache.NewSqliteGeocodeCache(sdb), cache.NewSqliteRouteCache(sdb), func() { sdb.Close() }, nil

	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, noop, fmt.Errorf("DATABASE_URL is required for the postgres cache backend")
		}
		pdb, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, noop, err
		}
		return cache.NewSQLGeocodeCache(pdb), cache.NewSQLRouteCache(pdb), func() { pdb.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisGeocodeCache(client), cache.NewRedisRouteCache(client), func() { client.Close() }, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

func logProgress(p bulk.Progress) {
	log.Printf("phase=%s %d/%d (%d%%)", p.Phase, p.Current, p.Total, p.Percentage)
}
