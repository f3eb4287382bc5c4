package main

import (
	"context"
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/creiffur/dataview/pkg/capture"
	"github.com/creiffur/dataview/pkg/config"
	"github.com/creiffur/dataview/pkg/scope"
	"github.com/creiffur/dataview/pkg/series"
	"github.com/creiffur/dataview/pkg/synth"
	"github.com/creiffur/dataview/pkg/view"
)

func main() {
	var (
		configFlag  = flag.String("config", "config.yaml", "Configuration file path")
		pointsFlag  = flag.Int("points", 0, "Synthetic signal length (overrides config)")
		captureFlag = flag.Bool("capture", false, "Record the signal from the serial capture source instead of generating test data")
		mockFlag    = flag.Bool("mock", false, "Use the mocked capture source instead of a serial port")
		rateFlag    = flag.Float64("fs", 0, "Explicit sampling rate in Hz for captured data (0 = infer from timestamps)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *pointsFlag > 0 {
		cfg.Synth.Points = *pointsFlag
	}

	s, err := buildSeries(cfg, *captureFlag, *mockFlag, *rateFlag)
	if err != nil {
		log.Fatalf("Failed to build series: %v", err)
	}
	log.Printf("Loaded %d samples, sampling interval %g s", s.Len(), s.Interval())

	// Create Fyne application
	application := app.NewWithID("com.creiffur.dataview")

	window := application.NewWindow(cfg.View.Title)
	window.Resize(fyne.NewSize(cfg.View.WindowWidth, cfg.View.WindowHeight))
	window.CenterOnScreen()

	// Scope widget is the rendering surface; the downsampler drives it
	scopeWidget := scope.New(cfg)
	downsampler := view.New(s, scopeWidget, view.WithPointBudget(cfg.View.PointBudget))

	// Reset button restores the full-series view
	resetBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		scopeWidget.SetViewRange(s.Start(), s.End())
		scopeWidget.EndInteraction()
	})
	toolbar := container.NewHBox(resetBtn)

	window.SetContent(container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		scopeWidget,
	))

	downsampler.InitialRender()
	window.ShowAndRun()
}

// buildSeries obtains the signal to explore: recorded from a capture
// source when requested, synthetic test data otherwise.
func buildSeries(cfg *config.Config, useCapture, useMock bool, fs float64) (*series.Series, error) {
	if !useCapture && !useMock {
		x, y := synth.Generate(cfg.Synth.Points)
		return series.NewXY(x, y)
	}

	var src capture.Source
	if useMock {
		src = capture.NewMock(&cfg.Mock)
		log.Printf("Recording %d samples from mocked source", cfg.Capture.Points)
	} else {
		src = capture.NewSerial(cfg.Capture.Port, cfg.Capture.BaudRate, cfg.Capture.BufferSize)
		log.Printf("Recording %d samples from %s", cfg.Capture.Points, cfg.Capture.Port)
	}

	if err := src.Connect(); err != nil {
		return nil, err
	}
	defer src.Close()

	x, y, err := capture.Record(context.Background(), src, cfg.Capture.Points)
	if err != nil {
		return nil, err
	}

	if fs > 0 {
		return series.NewXY(x, y, series.WithRate(fs))
	}
	return series.NewXY(x, y)
}
