package main

import (
	"fmt"
	"sync"

	"codeberg.org/interprep/server/internal/embedder"
	"github.com/schollz/progressbar/v3"
)

// a progress bar sized on the first callback, when the total is known
func newProgress(description string) embedder.ProgressFunc {
	if flags.Quiet {
		return nil
	}

	var (
		mu  sync.Mutex
		bar *progressbar.ProgressBar
	)

	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		_ = bar.Set(done) //nolint:errcheck // rendering only
	}
}
