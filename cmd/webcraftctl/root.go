package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"webcraft/client"
	"webcraft/intake"
)

const (
	envBaseURL     = "WEBCRAFT_API_URL"
	defaultBaseURL = "http://localhost:8080"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	BaseURL string
	Timeout time.Duration
	Format  string // "json" | "text"

	sink intake.Sink
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the webcraftctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "webcraftctl",
		Short:        "Submit contact, booking, newsletter and project forms",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.sink != nil {
				return nil
			}
			c, err := client.New(client.Config{BaseURL: opts.BaseURL, Timeout: opts.Timeout})
			if err != nil {
				return err
			}
			opts.sink = c
			return nil
		},
	}

	baseURL := os.Getenv(envBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", baseURL, "notification API base URL (env "+envBaseURL+")")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 15*time.Second, "request timeout")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewContactCommand(opts))
	cmd.AddCommand(NewSubscribeCommand(opts))
	cmd.AddCommand(NewBookCommand(opts))
	cmd.AddCommand(NewIntakeCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// result is what every command prints on success.
type result struct {
	Message   string `json:"message"`
	MeetLink  string `json:"meetLink,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

func (o *RootOptions) print(w io.Writer, r result) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintln(w, r.Message)
	if r.MeetLink != "" {
		fmt.Fprintf(w, "Meeting link: %s\n", r.MeetLink)
	}
	if r.BookingID != "" {
		fmt.Fprintf(w, "Booking reference: %s\n", r.BookingID)
	}
	return nil
}

// failure turns a form error into the message the website would show.
func failure(err error) error {
	return errors.New(intake.UserMessage(err))
}
