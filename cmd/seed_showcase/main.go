package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/skillnest-backend/internal/app"
	"github.com/yungbote/skillnest-backend/internal/data/seed"
)

// seed_showcase loads the bundled showcase transcripts without starting the
// HTTP server.
func main() {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry-run", false, "list bundled transcripts without writing them")
	flag.Parse()

	_ = godotenv.Load()

	if dryRun {
		rows, err := seed.ShowcaseTranscripts()
		if err != nil {
			fmt.Printf("load showcase transcripts: %v\n", err)
			os.Exit(1)
		}
		for _, t := range rows {
			fmt.Printf("[dry-run] video_id=%s title=%q segments=%d\n", t.VideoID, t.Title, len(t.Segments))
		}
		fmt.Printf("done; transcripts=%d\n", len(rows))
		return
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	n, err := application.Services.VideoAI.InitializeShowcase(context.Background())
	if err != nil {
		fmt.Printf("initialize showcase: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("done; transcripts_available=%d\n", n)
}
