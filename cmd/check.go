package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ajofficial223/Data-Scraper/internal/config"
	"github.com/ajofficial223/Data-Scraper/internal/validate"
)

var (
	checkURL   string
	checkEmail string
	checkPhone string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the field validators against single values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runCheck(ctx, cmd.OutOrStdout(), cfg, checkURL, checkEmail, checkPhone)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "", "website to probe")
	checkCmd.Flags().StringVar(&checkEmail, "email", "", "email address to check")
	checkCmd.Flags().StringVar(&checkPhone, "phone", "", "phone number to check")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(ctx context.Context, w io.Writer, c *config.Config, url, email, phone string) error {
	if url == "" && email == "" && phone == "" {
		return eris.New("check: pass at least one of --url, --email, --phone")
	}

	if url != "" {
		checker := validate.NewURLChecker(c.HTTP.ValidateTimeout(), c.HTTP.UserAgent)
		fmt.Fprintf(w, "url %s: %s\n", validate.NormalizeURL(url), verdict(checker.ValidateURL(ctx, url)))
	}
	if email != "" {
		fmt.Fprintf(w, "email %s: %s\n", email, verdict(validate.ValidateEmail(email)))
	}
	if phone != "" {
		fmt.Fprintf(w, "phone %s: %s\n", phone, verdict(validate.ValidatePhone(phone)))
	}
	return nil
}

func verdict(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}
