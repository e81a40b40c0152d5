package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/analyzer"
	"github.com/chaejoon23/pind/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>...",
	Short: "Submit YouTube URLs for analysis and print the extracted places",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := openSession()
		if err != nil {
			return err
		}

		coll := aggregator.NewCollection()
		p := newPipeline(newBackend(sess), coll, st)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		for i, url := range args {
			select {
			case <-ctx.Done():
				fmt.Printf("\nInterrupted after %d/%d URLs\n", i, len(args))
				return nil
			default:
			}

			fmt.Printf("Analyzing %s\n", url)

			video, found, err := p.Analyze(ctx, url, func(progress int, step string) {
				if step != "" {
					fmt.Printf("  %3d%%  %s\n", progress, step)
				} else {
					fmt.Printf("  %3d%%\n", progress)
				}
			})
			if err != nil {
				if errors.Is(err, context.Canceled) {
					fmt.Printf("\nInterrupted after %d/%d URLs\n", i, len(args))
					return nil
				}
				var ae *analyzer.Error
				if errors.As(err, &ae) {
					fmt.Fprintf(os.Stderr, "  ERROR (%s): %s\n", ae.Category, ae.Message)
					continue
				}
				return err
			}
			if !found {
				fmt.Println("  0 places found.")
				continue
			}

			fmt.Printf("  %s (%d places)\n", video.Title, len(video.Locations))
			for _, loc := range video.Locations {
				fmt.Printf("    %-30s %9.4f, %9.4f\n", loc.Name, loc.Coordinates.Lat, loc.Coordinates.Lng)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
