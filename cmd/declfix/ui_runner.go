package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"declfix/internal/driver"
	"declfix/internal/ui"
)

type checkOutcome struct {
	run *driver.Run
	err error
}

type fixOutcome struct {
	report *driver.FixReport
	err    error
}

// runWithUI runs work in the background while the progress view consumes
// its events. The view quits once work returns and the channel is closed.
func runWithUI(title string, files []string, opts driver.Options, work func(driver.Options)) error {
	events := make(chan driver.Event, 256)
	opts.Progress = driver.ChannelSink{Ch: events}
	go func() {
		work(opts)
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, err := program.Run()
	if err != nil {
		// вид упал: дочитываем события, чтобы работа не блокировалась
		for range events {
		}
	}
	return err
}

func checkWithUI(ctx context.Context, title string, paths []string, opts driver.Options) (*driver.Run, error) {
	files, err := driver.ListFiles(paths)
	if err != nil {
		return nil, err
	}
	outcome := make(chan checkOutcome, 1)
	uiErr := runWithUI(title, files, opts, func(o driver.Options) {
		run, err := driver.CheckPaths(ctx, paths, o)
		outcome <- checkOutcome{run: run, err: err}
	})
	res := <-outcome
	if uiErr != nil {
		return res.run, uiErr
	}
	return res.run, res.err
}

func fixWithUI(ctx context.Context, title string, paths []string, opts driver.Options, fo driver.FixOptions) (*driver.FixReport, error) {
	files, err := driver.ListFiles(paths)
	if err != nil {
		return nil, err
	}
	outcome := make(chan fixOutcome, 1)
	uiErr := runWithUI(title, files, opts, func(o driver.Options) {
		report, err := driver.FixPaths(ctx, paths, o, fo)
		outcome <- fixOutcome{report: report, err: err}
	})
	res := <-outcome
	if uiErr != nil {
		return res.report, uiErr
	}
	return res.report, res.err
}
