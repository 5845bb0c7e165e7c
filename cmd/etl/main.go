package main

import (
	"fmt"
	"os"

	"github.com/notredoo/videogames-dw/app"
)

// Runs the full warehouse rebuild: reset, dimensions, dependent dimensions,
// facts. Exits non-zero when any stage failed so schedulers can tell a partial
// run from a clean one.
func main() {
	application := app.NewETLWorker()
	application.Start()
	report := application.RunETL()
	application.Close()

	for _, stage := range report.Stages {
		if stage.Failed() {
			fmt.Printf("[%s] FAILED: %v\n", stage.Stage, stage.Err)
			continue
		}
		fmt.Printf("[%s] %d rows (%s)\n", stage.Stage, stage.Rows, stage.Duration)
	}

	if report.Failed() {
		_, _ = fmt.Fprintf(os.Stderr, "run %s finished with %d failed stages\n", report.ID, len(report.FailedStages()))
		os.Exit(1)
	}
	fmt.Printf("run %s complete\n", report.ID)
}
