package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaejoon23/pind/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and local cache status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		st, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("Backend:  %s\n", cfg.API.BaseURL)
		if sess.IsAuthenticated() {
			fmt.Printf("Session:  logged in as %s\n", sess.UserEmail())
		} else {
			fmt.Printf("Session:  anonymous\n")
		}
		fmt.Printf("Cache:    %d videos, %d places\n", st.VideoCount(), st.PlaceCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
