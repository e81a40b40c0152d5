package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/store"
	"github.com/chaejoon23/pind/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive map web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		st, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := openSession()
		if err != nil {
			return err
		}

		// Seed the in-memory collection from the local cache so past results
		// show up immediately. The list is newest-first, so the newest video
		// becomes the initial selection.
		coll := aggregator.NewCollection()
		cached, err := st.ListVideos()
		if err != nil {
			return fmt.Errorf("loading cached videos: %w", err)
		}
		for _, v := range cached {
			coll.Add(v)
		}

		srv := &web.Server{
			Addr:       fmt.Sprintf("%s:%d", serveHost, servePort),
			Pipeline:   newPipeline(newBackend(sess), coll, st),
			Collection: coll,
			Session:    sess,
			Logger:     log.Logger,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8090, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
