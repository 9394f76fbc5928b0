package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"signalist/internal/auth/models"
)

var errOperationFailed = errors.New("operation failed")

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errOperationFailed) {
			fmt.Fprintf(os.Stderr, "authctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultCookieFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".signalist-cookies.json"
	}
	return filepath.Join(home, ".signalist", "cookies.json")
}

func newRootCmd(out io.Writer) *cobra.Command {
	cl := &client{HTTP: &http.Client{}}
	var (
		baseURL    = envOr("SIGNALIST_URL", "http://localhost:8080")
		cookieFile = envOr("SIGNALIST_COOKIE_FILE", defaultCookieFile())
		format     = envOr("SIGNALIST_OUT", "text")
		timeout    = 30 * time.Second
	)

	root := &cobra.Command{
		Use:           "authctl",
		Short:         "Sign up, sign in and sign out against a signalist gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("--out must be text or json, got %q", format)
			}
			cl.BaseURL = baseURL
			cl.CookieFile = cookieFile
			cl.HTTP.Timeout = timeout
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "gateway base URL (env SIGNALIST_URL)")
	root.PersistentFlags().StringVar(&cookieFile, "cookie-file", cookieFile, "where session cookies are kept (env SIGNALIST_COOKIE_FILE)")
	root.PersistentFlags().StringVar(&format, "out", format, "output format: text|json (env SIGNALIST_OUT)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", timeout, "request timeout")

	report := func(cmd *cobra.Command, res *models.Result, status int) error {
		w := cmd.OutOrStdout()
		if format == "json" {
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(w, string(b))
		} else if res.Success {
			fmt.Fprintln(w, "ok")
			if res.Data != nil && res.Data.User != nil {
				fmt.Fprintf(w, "user: %s <%s>\n", res.Data.User.Name, res.Data.User.Email)
			}
		} else {
			fmt.Fprintf(w, "error: %s (status %d)\n", res.Error, status)
		}
		if !res.Success {
			return errOperationFailed
		}
		return nil
	}

	var signUp models.SignUpRequest
	signUpCmd := &cobra.Command{
		Use:   "sign-up",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if signUp.Password == "" {
				signUp.Password = os.Getenv("SIGNALIST_PASSWORD")
			}
			res, status, err := cl.call(cmd.Context(), "/sign-up", signUp)
			if err != nil {
				return err
			}
			return report(cmd, res, status)
		},
	}
	f := signUpCmd.Flags()
	f.StringVar(&signUp.Email, "email", "", "account email")
	f.StringVar(&signUp.Password, "password", "", "account password (env SIGNALIST_PASSWORD)")
	f.StringVar(&signUp.FullName, "name", "", "full name")
	f.StringVar(&signUp.Country, "country", "", "country code")
	f.StringVar(&signUp.InvestmentGoals, "investment-goals", "", "investment goals")
	f.StringVar(&signUp.RiskTolerance, "risk-tolerance", "", "risk tolerance")
	f.StringVar(&signUp.PreferredIndustry, "preferred-industry", "", "preferred industry")
	_ = signUpCmd.MarkFlagRequired("email")

	var signIn models.SignInRequest
	signInCmd := &cobra.Command{
		Use:   "sign-in",
		Short: "Sign in and store the session cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			if signIn.Password == "" {
				signIn.Password = os.Getenv("SIGNALIST_PASSWORD")
			}
			res, status, err := cl.call(cmd.Context(), "/sign-in", signIn)
			if err != nil {
				return err
			}
			return report(cmd, res, status)
		},
	}
	signInCmd.Flags().StringVar(&signIn.Email, "email", "", "account email")
	signInCmd.Flags().StringVar(&signIn.Password, "password", "", "account password (env SIGNALIST_PASSWORD)")
	_ = signInCmd.MarkFlagRequired("email")

	signOutCmd := &cobra.Command{
		Use:   "sign-out",
		Short: "End the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, status, err := cl.call(cmd.Context(), "/sign-out", nil)
			if err != nil {
				return err
			}
			return report(cmd, res, status)
		},
	}

	root.AddCommand(signUpCmd, signInCmd, signOutCmd)
	return root
}
