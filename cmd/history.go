package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/model"
	"github.com/chaejoon23/pind/internal/places"
	"github.com/chaejoon23/pind/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Fetch your server-side analysis history into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		if !sess.IsAuthenticated() {
			return fmt.Errorf("not logged in (run: pind login)")
		}

		st, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		entries, err := newBackend(sess).History(ctx)
		if err != nil {
			return fmt.Errorf("fetching history: %w", err)
		}

		coll := aggregator.NewCollection()
		p := newPipeline(nil, coll, st)

		var videos []model.Video
		skipped := 0
		for _, entry := range entries {
			v, ok := places.VideoFromHistory(entry)
			if !ok {
				skipped++
				continue
			}
			videos = append(videos, v)
		}
		p.ImportVideos(videos)

		fmt.Printf("Imported %d videos", coll.Len())
		if skipped > 0 {
			fmt.Printf(" (%d entries had no mappable places)", skipped)
		}
		fmt.Println()

		for _, v := range coll.Videos() {
			fmt.Printf("  %s  %-40s  %d places\n", v.Date, v.Title, len(v.Locations))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
