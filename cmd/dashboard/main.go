// Command dashboard is a terminal consumer of the sync layer: it signs in
// against the configured API, pulls the conference list visible to the
// caller's role, and prints it. A missing CONVO_API_URL or CONVO_API_KEY
// surfaces as the setup instruction rather than a transport error.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"convomanage/config"
	"convomanage/internal/client"
)

func main() {
	email := flag.String("email", "", "sign in with this email")
	password := flag.String("password", "", "password for -email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	app := client.New(cfg.APIUrl, cfg.APIKey, logger)
	ctx := context.Background()
	app.Session.Start(ctx)
	defer app.Session.Stop()

	if *email != "" {
		if err := app.Session.SignIn(ctx, *email, *password); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
	}

	app.Conferences.Refresh(ctx)
	conferences := app.Conferences.Conferences()
	stats := client.Summarize(conferences)
	fmt.Printf("%d conferences (%d published, %d live)\n", stats.Total, stats.Published, stats.Live)
	for _, c := range conferences {
		fmt.Printf("%s  %-10s  %s\n", c.StartDate.Format("2006-01-02"), c.Status, c.Title)
	}
}
