package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chaejoon23/pind/internal/aggregator"
	"github.com/chaejoon23/pind/internal/analyzer"
	"github.com/chaejoon23/pind/internal/backend"
	"github.com/chaejoon23/pind/internal/config"
	"github.com/chaejoon23/pind/internal/logging"
	"github.com/chaejoon23/pind/internal/pipeline"
	"github.com/chaejoon23/pind/internal/session"
	"github.com/chaejoon23/pind/internal/store"
	"github.com/chaejoon23/pind/internal/youtube"
)

var (
	configPath string
	dataDir    string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pind",
	Short: "Analyze YouTube videos into places and browse them on a map",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.Data.Dir
		}

		logging.Init(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for session and cached results")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

// openSession loads the credential store from the data directory.
func openSession() (*session.Store, error) {
	return session.Open(dataDir)
}

// newBackend builds the gateway for the configured base URL.
func newBackend(sess *session.Store) *backend.Client {
	return backend.New(cfg.API.BaseURL, sess, log.Logger)
}

// newPipeline assembles the full analysis pipeline. The store may be nil
// for commands that do not touch the local cache.
func newPipeline(b *backend.Client, coll *aggregator.Collection, st *store.Store) *pipeline.Pipeline {
	a := analyzer.New(b, log.Logger)
	if cfg.Poll.IntervalSeconds > 0 {
		a.PollInterval = time.Duration(cfg.Poll.IntervalSeconds) * time.Second
	}
	if cfg.Poll.MaxRetries > 0 {
		a.MaxRetries = cfg.Poll.MaxRetries
	}

	p := &pipeline.Pipeline{
		Analyzer:   a,
		Collection: coll,
		Store:      st,
		Logger:     log.Logger,
	}
	if cfg.YouTube.MetadataLookup {
		p.Metadata = youtube.NewMetadataClient()
	}
	return p
}
