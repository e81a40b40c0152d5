package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chaejoon23/pind/internal/store"
)

var (
	authEmail    string
	authPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Pind backend and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials()
		if err != nil {
			return err
		}

		sess, err := openSession()
		if err != nil {
			return err
		}

		tok, err := newBackend(nil).Login(context.Background(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := sess.Save(tok.AccessToken, tok.TokenType, email); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", email)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new Pind account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials()
		if err != nil {
			return err
		}

		if err := newBackend(nil).Signup(context.Background(), email, password); err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}

		fmt.Println("Account created. Now run: pind login")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session and the local result cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		if err := sess.Clear(); err != nil {
			return err
		}

		if err := clearCache(); err != nil {
			return err
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func clearCache() error {
	st, err := store.New(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Clear()
}

// credentials resolves email/password from flags, prompting on stdin for
// whichever is missing.
func credentials() (string, string, error) {
	email := authEmail
	password := authPassword
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password (prompted if omitted)")
	}
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd)
}
