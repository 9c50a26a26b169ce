package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goohm/pkg/config"
	"github.com/itohio/goohm/pkg/probe"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createDividerTab(state),
		createSamplingTab(state),
		createSeriesTab(state),
		createHistoryTab(state),
		createResetTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// saveConfig applies edit to a copy of the configuration, validates and
// writes it, and only then replaces the live configuration. Changes to the
// measurement chain take effect on the next connect.
func saveConfig(state *appState, edit func(cfg *config.Config)) bool {
	if err := applyConfig(state.cfg, state.configPath, edit); err != nil {
		dialog.ShowError(err, state.window)
		return false
	}
	return true
}

// applyConfig leaves cfg untouched when the edited copy fails to validate or save.
func applyConfig(cfg *config.Config, path string, edit func(cfg *config.Config)) error {
	next := *cfg
	edit(&next)

	if err := next.Validate(); err != nil {
		return err
	}
	if err := next.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	*cfg = next
	return nil
}

func setFloat(entry *widget.Entry, dst *float64) {
	if v, err := strconv.ParseFloat(entry.Text, 64); err == nil {
		*dst = v
	}
}

func setInt(entry *widget.Entry, dst *int) {
	if v, err := strconv.Atoi(entry.Text); err == nil {
		*dst = v
	}
}

func setUint32(entry *widget.Entry, dst *uint32) {
	if v, err := strconv.ParseUint(entry.Text, 10, 32); err == nil {
		*dst = uint32(v)
	}
}

func setDuration(entry *widget.Entry, dst *time.Duration) {
	if v, err := time.ParseDuration(entry.Text); err == nil {
		*dst = v
	}
}

func newEntry(text string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(text)
	return e
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := probe.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}
	baudEntry := newEntry(strconv.Itoa(state.cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}

				portChanged := state.cfg.Serial.Port != selectedPort
				if !saveConfig(state, func(cfg *config.Config) {
					cfg.Serial.Port = selectedPort
					setInt(baudEntry, &cfg.Serial.BaudRate)
				}) {
					return
				}

				// If port changed and device was connected, restart the measurement chain
				if portChanged && state.chain != nil && !state.useMock {
					disconnect(state)
					handleConnect(state)
				}
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createDividerTab creates the voltage divider configuration tab.
func createDividerTab(state *appState) *container.TabItem {
	knownEntry := newEntry(fmt.Sprintf("%.0f", state.cfg.Divider.KnownResistance))
	fullScaleEntry := newEntry(fmt.Sprintf("%.0f", state.cfg.Divider.FullScale))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Reference Resistor (Ω)", Widget: knownEntry},
			{Text: "ADC Full Scale", Widget: fullScaleEntry},
		},
		OnSubmit: func() {
			saveConfig(state, func(cfg *config.Config) {
				setFloat(knownEntry, &cfg.Divider.KnownResistance)
				setFloat(fullScaleEntry, &cfg.Divider.FullScale)
			})
		},
	}

	return container.NewTabItem("Divider", form)
}

// createSamplingTab creates the sampling and cycle configuration tab.
func createSamplingTab(state *appState) *container.TabItem {
	batchEntry := newEntry(strconv.Itoa(state.cfg.Sampling.BatchSize))
	intervalEntry := newEntry(state.cfg.Sampling.Interval.String())
	cycleEntry := newEntry(state.cfg.CycleDelay.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Batch Size", Widget: batchEntry},
			{Text: "Sample Interval", Widget: intervalEntry},
			{Text: "Cycle Delay", Widget: cycleEntry},
		},
		OnSubmit: func() {
			saveConfig(state, func(cfg *config.Config) {
				setInt(batchEntry, &cfg.Sampling.BatchSize)
				setDuration(intervalEntry, &cfg.Sampling.Interval)
				setDuration(cycleEntry, &cfg.CycleDelay)
			})
		},
	}

	return container.NewTabItem("Sampling", form)
}

// createSeriesTab creates the standard value range tab.
func createSeriesTab(state *appState) *container.TabItem {
	s := state.cfg.Series
	minEntry := newEntry(strconv.FormatUint(uint64(s.MinOhm), 10))
	maxEntry := newEntry(strconv.FormatUint(uint64(s.MaxOhm), 10))
	minDecadeEntry := newEntry(strconv.Itoa(s.MinDecade))
	maxDecadeEntry := newEntry(strconv.Itoa(s.MaxDecade))
	capacityEntry := newEntry(strconv.Itoa(s.Capacity))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Min (Ω)", Widget: minEntry},
			{Text: "Max (Ω)", Widget: maxEntry},
			{Text: "Min Decade", Widget: minDecadeEntry},
			{Text: "Max Decade", Widget: maxDecadeEntry},
			{Text: "Capacity (0=unbounded)", Widget: capacityEntry},
		},
		OnSubmit: func() {
			saveConfig(state, func(cfg *config.Config) {
				setUint32(minEntry, &cfg.Series.MinOhm)
				setUint32(maxEntry, &cfg.Series.MaxOhm)
				setInt(minDecadeEntry, &cfg.Series.MinDecade)
				setInt(maxDecadeEntry, &cfg.Series.MaxDecade)
				setInt(capacityEntry, &cfg.Series.Capacity)
			})
		},
	}

	return container.NewTabItem("Series", form)
}

// createHistoryTab creates the trend configuration tab.
func createHistoryTab(state *appState) *container.TabItem {
	windowEntry := newEntry(state.cfg.History.Window.String())
	pointsEntry := newEntry(strconv.Itoa(state.cfg.History.MaxPoints))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Window", Widget: windowEntry},
			{Text: "Max Points", Widget: pointsEntry},
		},
		OnSubmit: func() {
			saveConfig(state, func(cfg *config.Config) {
				setDuration(windowEntry, &cfg.History.Window)
				setInt(pointsEntry, &cfg.History.MaxPoints)
			})
		},
	}

	return container.NewTabItem("History", form)
}

// createResetTab creates the external reset line tab.
func createResetTab(state *appState) *container.TabItem {
	chipEntry := newEntry(state.cfg.Reset.GPIOChip)
	lineEntry := newEntry(strconv.Itoa(state.cfg.Reset.GPIOLine))
	pulseEntry := newEntry(state.cfg.Reset.Pulse.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "GPIO Chip", Widget: chipEntry},
			{Text: "GPIO Line (-1=serial)", Widget: lineEntry},
			{Text: "Pulse", Widget: pulseEntry},
		},
		OnSubmit: func() {
			saveConfig(state, func(cfg *config.Config) {
				cfg.Reset.GPIOChip = chipEntry.Text
				setInt(lineEntry, &cfg.Reset.GPIOLine)
				setDuration(pulseEntry, &cfg.Reset.Pulse)
			})
		},
	}

	return container.NewTabItem("Reset", form)
}

// createMockTab creates the Mock device configuration tab.
func createMockTab(state *appState) *container.TabItem {
	resistanceEntry := newEntry(fmt.Sprintf("%.0f", state.cfg.Mock.Resistance))
	noiseEntry := newEntry(fmt.Sprintf("%.1f", state.cfg.Mock.Noise))
	driftEntry := newEntry(fmt.Sprintf("%.4f", state.cfg.Mock.Drift))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Resistance (Ω, 0=open)", Widget: resistanceEntry},
			{Text: "Noise (ADC codes)", Widget: noiseEntry},
			{Text: "Drift (relative)", Widget: driftEntry},
		},
		OnSubmit: func() {
			if !saveConfig(state, func(cfg *config.Config) {
				setFloat(resistanceEntry, &cfg.Mock.Resistance)
				setFloat(noiseEntry, &cfg.Mock.Noise)
				setFloat(driftEntry, &cfg.Mock.Drift)
			}) {
				return
			}

			// Swap the resistor of a running simulation
			if state.chain != nil {
				if mock, ok := state.chain.device.(*probe.Mock); ok {
					mock.SetResistance(state.cfg.Mock.Resistance)
				}
			}
		},
	}

	return container.NewTabItem("Mock", form)
}
