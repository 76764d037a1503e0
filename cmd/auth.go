package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkravets/newsline/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [user-id]",
	Short: "Sign in and store the session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sess, err := loadEnvironment()
		if err != nil {
			return err
		}

		userID := ""
		if len(args) > 0 {
			userID = args[0]
		}
		if userID == "" {
			userID, err = promptLine("User ID: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if userID == "" || password == "" {
			return fmt.Errorf("user id and password are required")
		}

		client := clientFactory(cfg)("")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.TimeoutDuration())
		defer cancel()

		id, err := client.Login(ctx, userID, password)
		if err != nil {
			if d := api.DetailOf(err); d != "" {
				return fmt.Errorf("login failed: %s", d)
			}
			return fmt.Errorf("login failed: %w", err)
		}
		if err := sess.SetIdentity(id); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s.\n", id.UserID)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadEnvironment()
		if err != nil {
			return err
		}

		userID, err := promptLine("User ID: ")
		if err != nil {
			return err
		}
		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		name, err := promptLine("Name (optional): ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		if userID == "" || email == "" || password == "" {
			return fmt.Errorf("user id, email and password are required")
		}

		client := clientFactory(cfg)("")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.TimeoutDuration())
		defer cancel()

		req := api.RegisterRequest{UserID: userID, Email: email, Password: password, Name: name}
		if err := client.Register(ctx, req); err != nil {
			if d := api.DetailOf(err); d != "" {
				return fmt.Errorf("signup failed: %s", d)
			}
			return fmt.Errorf("signup failed: %w", err)
		}
		fmt.Println("Account created. Run `newsline login` to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := loadEnvironment()
		if err != nil {
			return err
		}
		if !sess.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}
		if err := sess.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := loadEnvironment()
		if err != nil {
			return err
		}
		id := sess.Current()
		if id == nil {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("User ID: %s\n", id.UserID)
		if id.Name != "" {
			fmt.Printf("Name: %s\n", id.Name)
		}
		if id.Email != "" {
			fmt.Printf("Email: %s\n", id.Email)
		}
		if exp, ok := sess.TokenExpiry(); ok {
			fmt.Printf("Token expires: %s\n", exp.Local().Format("Jan 02, 2006 15:04"))
		}
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
