package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goohm/pkg/config"
	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/ohmmeter"
	"github.com/itohio/goohm/pkg/panel"
	"github.com/itohio/goohm/pkg/probe"
	"github.com/itohio/goohm/pkg/report"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.goohm")

	// Create main window
	window := application.NewWindow("Ohmmeter")
	window.Resize(fyne.NewSize(1100, 600))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		useMock:    *mockFlag,
		history:    history.New(cfg.History.Window),
		matrix:     panel.NewMatrix(cfg.Layout()),
		text:       panel.NewText(),
		trend:      panel.NewTrend(cfg.History.Window, cfg.History.MaxPoints),
		status:     widget.NewLabel("Disconnected"),
	}

	// The trend and status follow the history
	state.history.OnUpdate(func(results []ohmmeter.Result) {
		stats := history.Summarize(results)
		fyne.Do(func() {
			state.trend.UpdateData(results)
			state.status.SetText(statusText(stats))
		})
	})

	toolbar := createToolbar(state)

	instrument := container.NewVBox(state.text, state.matrix)
	content := container.NewBorder(
		toolbar,
		state.status,
		instrument,
		nil,
		state.trend,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		closeMeasurementChain(state.chain)
	})
	window.ShowAndRun()
}

// measurementChain tracks the components of the measurement chain for graceful shutdown.
type measurementChain struct {
	device         probe.Device
	meter          *ohmmeter.Meter
	cancel         context.CancelFunc
	meterGoroutine chan struct{} // Closed when meter goroutine exits
}

// appState holds the application state. It is only touched from the UI thread.
type appState struct {
	cfg        *config.Config
	configPath string
	window     fyne.Window
	useMock    bool

	connectBtn *widget.Button
	resetBtn   *widget.Button

	history *history.History
	matrix  *panel.Matrix
	text    *panel.Text
	trend   *panel.Trend
	status  *widget.Label

	chain *measurementChain // Current measurement chain (nil if not connected)
}

// createToolbar creates the application toolbar.
func createToolbar(state *appState) fyne.CanvasObject {
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	resetBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		handleReset(state)
	})
	resetBtn.Disable()
	state.resetBtn = resetBtn

	snapshotBtn := widget.NewButtonWithIcon("", theme.MediaPhotoIcon(), func() {
		handleSnapshot(state)
	})

	exportBtn := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), func() {
		handleExport(state)
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn, resetBtn), // left
		container.NewHBox(snapshotBtn, exportBtn),            // right
		nil, // center (spacer)
	)
}

// closeMeasurementChain gracefully closes the measurement chain.
// Closing the device closes its sample channel, which ends the meter loop.
func closeMeasurementChain(chain *measurementChain) {
	if chain == nil {
		return
	}

	if chain.device != nil {
		if err := chain.device.Close(); err != nil {
			log.Printf("Error closing device: %v", err)
		}
	}
	chain.cancel()

	// Wait for meter goroutine to finish
	<-chain.meterGoroutine
}

// disconnect tears the chain down and updates the toolbar.
func disconnect(state *appState) {
	closeMeasurementChain(state.chain)
	state.chain = nil
	state.connectBtn.SetIcon(theme.LoginIcon())
	state.resetBtn.Disable()
	state.status.SetText("Disconnected")
	log.Printf("Disconnected")
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.chain != nil {
		disconnect(state)
		return
	}

	chain, err := startMeasurementChain(state)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.chain = chain
	state.connectBtn.SetIcon(theme.LogoutIcon())
	state.resetBtn.Enable()
}

// startMeasurementChain connects the device and runs the meter on its stream.
func startMeasurementChain(state *appState) (*measurementChain, error) {
	cfg := state.cfg

	table, err := eseries.Build(cfg.Range())
	if err != nil {
		return nil, fmt.Errorf("failed to build standard value table: %w", err)
	}

	var device probe.Device
	if state.useMock {
		device = probe.NewMock(cfg)
		log.Printf("Using mocked device")
	} else {
		device = probe.New(cfg.Serial.Port, cfg.Serial.BaudRate, probe.DefaultBufferSize)
	}

	if err := device.Connect(); err != nil {
		if state.useMock {
			return nil, fmt.Errorf("failed to connect to mocked device: %w", err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Serial.Port, err)
	}
	if !state.useMock {
		log.Printf("Connected to serial port: %s", cfg.Serial.Port)
	}

	// The device paces the samples
	opts := cfg.MeterOptions()
	opts.SampleInterval = 0

	meter := ohmmeter.New(table, probe.Source(device), opts)
	meter.SetPixels(state.matrix)
	meter.SetText(state.text)
	meter.OnUpdate(state.history.Add)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := meter.Run(ctx)
		if err != nil && !errors.Is(err, measure.ErrSourceClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("Measurement stopped: %v", err)
		}
	}()

	return &measurementChain{
		device:         device,
		meter:          meter,
		cancel:         cancel,
		meterGoroutine: done,
	}, nil
}

// statusText is the summary shown under the trend.
func statusText(s history.Stats) string {
	if s.Count == 0 {
		return "No results"
	}
	last := s.Last
	if last.OutOfRange {
		return fmt.Sprintf("OPEN  |  %d results, %d open", s.Count, s.Open)
	}
	labels := last.Bands.Labels()
	return fmt.Sprintf("%s (%s)  %s %s %s  |  %d results, %d open, min %s, max %s, mean %s",
		report.Ohm(float32(last.Nominal)), report.Ohm(last.Reading.Resistance),
		labels[0], labels[1], labels[2],
		s.Count, s.Open, report.Ohm(s.Min), report.Ohm(s.Max), report.Ohm(s.Mean))
}
