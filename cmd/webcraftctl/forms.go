package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"webcraft/intake"
	"webcraft/models"
)

const dateLayout = "2006-01-02"

func NewContactCommand(opts *RootOptions) *cobra.Command {
	var m models.ContactMessage
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a contact message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := intake.NewContactForm(opts.sink)
			defer form.Close()
			if err := form.Submit(cmd.Context(), m); err != nil {
				return failure(err)
			}
			_, msg := form.Status.Status()
			return opts.print(cmd.OutOrStdout(), result{Message: msg})
		},
	}
	cmd.Flags().StringVar(&m.Name, "name", "", "your name")
	cmd.Flags().StringVar(&m.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&m.Service, "service", "", "service you are interested in")
	cmd.Flags().StringVar(&m.Message, "message", "", "message")
	return cmd
}

func NewSubscribeCommand(opts *RootOptions) *cobra.Command {
	var n models.NewsletterSignup
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Subscribe an address to the newsletter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := intake.NewNewsletterForm(opts.sink)
			defer form.Close()
			if err := form.Submit(cmd.Context(), n); err != nil {
				return failure(err)
			}
			_, msg := form.Status.Status()
			return opts.print(cmd.OutOrStdout(), result{Message: msg})
		},
	}
	cmd.Flags().StringVar(&n.Email, "email", "", "email address")
	return cmd
}

func NewBookCommand(opts *RootOptions) *cobra.Command {
	var (
		b    models.ConsultationBooking
		date string
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a free consultation",
		Long:  "Book a free consultation. Slots: " + slotList(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				d, err := time.Parse(dateLayout, date)
				if err != nil {
					return failure(intake.ErrDateRequired)
				}
				b.Date = &d
			}
			form := intake.NewBookingForm(opts.sink)
			defer form.Close()
			res, err := form.Submit(cmd.Context(), b)
			if err != nil {
				return failure(err)
			}
			return opts.print(cmd.OutOrStdout(), result{
				Message:   res.Message,
				MeetLink:  intake.MeetLinkOrPlaceholder(res.MeetLink),
				BookingID: res.BookingID,
			})
		},
	}
	cmd.Flags().StringVar(&b.Name, "name", "", "your name")
	cmd.Flags().StringVar(&b.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&b.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&date, "date", "", "consultation date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&b.Time, "time", "", "time slot, e.g. \"10:00 AM\"")
	cmd.Flags().StringVar(&b.ProjectType, "project-type", "", "project type")
	cmd.Flags().StringVar(&b.Budget, "budget", "", "budget range")
	cmd.Flags().StringVar(&b.Message, "message", "", "anything we should know")
	return cmd
}

func slotList() string {
	return strings.Join(models.TimeSlots, ", ")
}
