package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/pflag"

	"svggeo/internal/config"
	"svggeo/internal/convert"
	"svggeo/internal/drawing"
	"svggeo/internal/geom"
	"svggeo/internal/logging"
	"svggeo/internal/tui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		// usage already printed by the flag set
		return
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.Preview {
		if err := preview(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("conversion failed", "input", cfg.Input, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	d, err := drawing.Load(cfg.Input)
	if err != nil {
		return err
	}
	fc, err := convert.New(cfg.Options(), logger).Convert(ctx, cfg.Bounds, d)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error { return writeOutput(w, cfg, fc) }
	if cfg.Output.Path == "" {
		err = write(os.Stdout)
	} else {
		f, ferr := os.Create(cfg.Output.Path)
		if ferr != nil {
			return fmt.Errorf("create output: %w", ferr)
		}
		err = writeAndClose(f, write)
	}
	if err != nil {
		return err
	}
	logger.Debug("output written", "format", cfg.Output.Format, "path", cfg.Output.Path)
	return nil
}

// writeAndClose runs write against wc and closes it, reporting the close
// error when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return write(wc)
}

func writeOutput(w io.Writer, cfg *config.Config, fc *geojson.FeatureCollection) error {
	var err error
	switch cfg.Output.Format {
	case "wkt":
		err = geom.WriteWKT(w, fc)
	default:
		err = geom.WriteGeoJSON(w, fc, cfg.Output.Indent)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Format, err)
	}
	return nil
}

// preview runs the terminal viewer. Log output would corrupt the alt
// screen, so conversions inside it log nowhere.
func preview(cfg *config.Config) error {
	name := filepath.Base(cfg.Input)
	var m tea.Model
	if cfg.PreviewsCollection() {
		fc, err := geom.LoadGeo(cfg.Input)
		if err != nil {
			return err
		}
		m = tui.NewWithCollection(name, fc)
	} else {
		d, err := drawing.Load(cfg.Input)
		if err != nil {
			return err
		}
		m = tui.New(tui.Source{
			Name:    name,
			Bounds:  cfg.Bounds,
			Drawing: d,
			Options: cfg.Options(),
			Log:     slog.New(slog.DiscardHandler),
		})
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
