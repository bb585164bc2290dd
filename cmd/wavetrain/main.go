// Command wavetrain builds a paired-audio training dataset from a manifest
// and reports on it: example counts, frame statistics, fetch timings, and
// optional WAV dumps of individual training pairs.
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
	"syscall"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/wavetrain/internal/config"
	"github.com/MrWong99/wavetrain/internal/health"
	"github.com/MrWong99/wavetrain/internal/observe"
	"github.com/MrWong99/wavetrain/pkg/audio"
	"github.com/MrWong99/wavetrain/pkg/dataset"
	"github.com/MrWong99/wavetrain/pkg/decode/wav"
)

func main() {
	os.Exit(run())
}

// inspectable is the surface shared by both dataset variants that the tool
// reports on.
type inspectable interface {
	dataset.Dataset
	Ref(i int) (dataset.FrameRef, error)
	SampleRate() int
	SourceFrames() int
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	verify := flag.Bool("verify", false, "fetch every training pair once and report timings")
	dump := flag.Int("dump", 0, "number of training pairs to write out as WAV files")
	out := flag.String("out", "pairs", "directory for dumped WAV files")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "wavetrain: config file %q not found, copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "wavetrain: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	slog.Info("wavetrain starting",
		"config", *configPath,
		"manifest", cfg.Dataset.Manifest,
		"mode", cfg.Dataset.Mode,
		"frame_length", cfg.Dataset.FrameLength,
		"log_level", cfg.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "wavetrain"})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(sctx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── Manifest ──────────────────────────────────────────────────────────────
	entries, err := dataset.LoadManifest(cfg.Dataset.Manifest)
	if err != nil {
		if errors.Is(err, dataset.ErrManifestNotFound) {
			fmt.Fprintf(os.Stderr, "wavetrain: manifest %q not found\n", cfg.Dataset.Manifest)
		} else {
			slog.Error("failed to read manifest", "err", err)
		}
		return 1
	}
	slog.Info("manifest loaded", "pairs", len(entries))

	// ── Build the dataset ─────────────────────────────────────────────────────
	dec := observe.InstrumentDecoder(wav.New(), metrics)
	dsCfg := dataset.Config{FrameLength: cfg.Dataset.FrameLength}

	var (
		ds  inspectable
		res *dataset.Resident
	)
	buildStart := time.Now()
	switch cfg.Dataset.Mode {
	case config.ModeOnDemand:
		d, derr := dataset.NewOnDemand(dec, entries, dsCfg)
		if derr != nil {
			slog.Error("failed to build dataset", "err", derr)
			return 1
		}
		ds = d
	default:
		d, derr := dataset.NewResident(dec, entries, dsCfg)
		if derr != nil {
			slog.Error("failed to build dataset", "err", derr)
			return 1
		}
		res = d
		ds = d
	}
	buildDur := time.Since(buildStart)

	metrics.DatasetBuildDuration.Record(ctx, buildDur.Seconds())
	metrics.RecordIndexOutcome(ctx, int64(ds.Len()), int64(ds.SourceFrames()-ds.Len()))
	if res != nil {
		metrics.ResidentSamples.Add(ctx, int64(res.Samples()))
	}

	slog.Info("audio corpus decoded", "files", 2*len(entries), "duration", buildDur)
	slog.Info("training examples indexed", "examples", ds.Len())

	// ── Dataset summary ───────────────────────────────────────────────────────
	printDatasetSummary(cfg, ds, res)

	// ── Verify walk ───────────────────────────────────────────────────────────
	if *verify {
		if err := verifyDataset(ctx, ds, string(cfg.Dataset.Mode), metrics); err != nil {
			slog.Error("verification failed", "err", err)
			return 1
		}
	}

	// ── Pair dump ─────────────────────────────────────────────────────────────
	if *dump > 0 {
		if err := dumpPairs(ds, *dump, *out); err != nil {
			slog.Error("dump failed", "err", err)
			return 1
		}
	}

	// ── Metrics listener (optional) ───────────────────────────────────────────
	if cfg.Metrics.Addr != "" {
		if err := serveMetrics(ctx, cfg, metrics); err != nil {
			slog.Error("metrics listener error", "err", err)
			return 1
		}
	}

	slog.Info("goodbye")
	return 0
}

// verifyDataset fetches every training pair once, timing each access, and
// logs aggregate statistics. The first failing fetch aborts the walk.
func verifyDataset(ctx context.Context, ds inspectable, mode string, m *observe.Metrics) error {
	start := time.Now()
	var sumRMS float64

	for i := range ds.Len() {
		fetchStart := time.Now()
		pair, err := ds.At(i)
		m.PairFetchDuration.Record(ctx, time.Since(fetchStart).Seconds(),
			metric.WithAttributes(observe.Attr("mode", mode)),
		)
		if err != nil {
			m.RecordPairFetch(ctx, mode, "error")
			return fmt.Errorf("fetch pair %d: %w", i, err)
		}
		m.RecordPairFetch(ctx, mode, "ok")
		sumRMS += float64(audio.RMS(pair.Source.Data))
	}

	meanRMS := 0.0
	if ds.Len() > 0 {
		meanRMS = sumRMS / float64(ds.Len())
	}
	slog.Info("dataset verified",
		"examples", ds.Len(),
		"mean_source_rms", fmt.Sprintf("%.4f", meanRMS),
		"duration", time.Since(start),
	)
	return nil
}

// dumpPairs writes the first n training pairs into dir, one source and one
// target WAV per pair, so individual examples can be listened to.
func dumpPairs(ds inspectable, n int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if n > ds.Len() {
		n = ds.Len()
	}

	for i := range n {
		pair, err := ds.At(i)
		if err != nil {
			return fmt.Errorf("fetch pair %d: %w", i, err)
		}
		ref, err := ds.Ref(i)
		if err != nil {
			return err
		}

		base := filepath.Join(dir, fmt.Sprintf("pair_%04d", i))
		if err := writeWAV(base+"_source.wav", ds.SampleRate(), pair.Source.Data); err != nil {
			return err
		}
		if err := writeWAV(base+"_target.wav", ds.SampleRate(), pair.Target.Data); err != nil {
			return err
		}
		slog.Debug("pair dumped", "index", i, "file", ref.File, "frame", ref.Frame)
	}

	slog.Info("pairs dumped", "count", n, "dir", dir)
	return nil
}

// writeWAV encodes samples as a 16-bit mono PCM file at the given rate.
func writeWAV(path string, rate int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v * 32767)
	}
	enc := gowav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// serveMetrics exposes Prometheus metrics and health probes until the
// context is cancelled.
func serveMetrics(ctx context.Context, cfg *config.Config, m *observe.Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	h := health.New(health.ManifestCheck(cfg.Dataset.Manifest))
	h.Register(mux)

	srv := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: observe.Middleware(m)(mux),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("metrics listener ready, press Ctrl+C to shut down", "addr", cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("shutdown signal received, stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ── Dataset summary ───────────────────────────────────────────────────────────

func printDatasetSummary(cfg *config.Config, ds inspectable, res *dataset.Resident) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║       Wavetrain — dataset summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Manifest", cfg.Dataset.Manifest)
	printRow("Mode", string(cfg.Dataset.Mode))
	printRow("Frame length", fmt.Sprintf("%d", cfg.Dataset.FrameLength))
	printRow("Sample rate", fmt.Sprintf("%d Hz", ds.SampleRate()))
	printRow("Source frames", fmt.Sprintf("%d", ds.SourceFrames()))
	printRow("Examples", fmt.Sprintf("%d", ds.Len()))
	printRow("Silent frames", fmt.Sprintf("%d", ds.SourceFrames()-ds.Len()))
	if res != nil {
		printRow("In memory", fmt.Sprintf("%d samples", res.Samples()))
		printRow("Audio length", res.Duration().Round(time.Millisecond).String())
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(label, value string) {
	fmt.Printf("║  %-14s : %-19s ║\n", label, trimValue(value))
}

// trimValue shortens a value so the summary box stays aligned.
func trimValue(v string) string {
	if len(v) > 19 {
		return "…" + v[len(v)-18:]
	}
	return v
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
