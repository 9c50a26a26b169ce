package main

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/itohio/goohm/pkg/export"
	"github.com/itohio/goohm/pkg/probe"
	"github.com/itohio/goohm/pkg/snapshot"
)

// handleReset reboots the board. A configured GPIO line resets it
// externally; otherwise the firmware is asked over serial to enter its
// bootloader, which drops the port, so the chain is closed.
func handleReset(state *appState) {
	if state.chain == nil {
		return
	}

	gpio, err := probe.NewGPIOReset(state.cfg.Reset)
	switch {
	case err == nil:
		if err := gpio.Reset(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to reset board: %w", err), state.window)
			return
		}
		log.Printf("Board reset through %s line %d", state.cfg.Reset.GPIOChip, state.cfg.Reset.GPIOLine)
	case errors.Is(err, probe.ErrResetDisabled):
		if err := state.chain.device.Reset(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to reset board: %w", err), state.window)
			return
		}
		if state.useMock {
			state.history.Clear()
			return
		}
		disconnect(state)
		dialog.ShowInformation("Reset", "The board rebooted into its bootloader.", state.window)
	default:
		dialog.ShowError(err, state.window)
	}
}

// handleSnapshot saves the last result as a resistor image.
func handleSnapshot(state *appState) {
	if state.chain == nil {
		dialog.ShowInformation("Snapshot", "Connect to take a snapshot.", state.window)
		return
	}
	result, ok := state.chain.meter.Latest()
	if !ok {
		dialog.ShowInformation("Snapshot", "No measurement yet.", state.window)
		return
	}

	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if w == nil {
			return // Cancelled
		}
		defer w.Close()

		if err := snapshot.PNG(w, snapshot.FromResult(result), snapshot.Colors, snapshot.ViewWidth*4, snapshot.ViewHeight*4); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		log.Printf("Snapshot saved to %s", w.URI())
	}, state.window)
	d.SetFileName("resistor.png")
	d.Show()
}

// handleExport writes the history as a PDF report.
func handleExport(state *appState) {
	source := state.cfg.Serial.Port
	if state.useMock {
		source = "mock"
	}
	session := export.Session{
		Config:  state.cfg,
		Source:  source,
		Results: state.history.Results(),
	}
	if len(session.Results) == 0 {
		dialog.ShowInformation("Export", "No results to export.", state.window)
		return
	}

	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if w == nil {
			return // Cancelled
		}
		defer w.Close()

		if err := export.WritePDF(w, session); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		log.Printf("Report saved to %s", w.URI())
	}, state.window)
	d.SetFileName("ohmmeter-report.pdf")
	d.Show()
}
