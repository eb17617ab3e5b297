package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/octozek/internal/mail"
	"github.com/Simplici0/octozek/internal/order"
)

func newTestEmailCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send the fixed test email to TO_EMAIL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg

			var sender mail.Sender
			if cfg.MailConfigured() {
				resend, err := mail.NewResendClient(mail.ResendConfig{
					APIKey:  cfg.ResendAPIKey,
					BaseURL: cfg.ResendBaseURL,
					Timeout: cfg.MailTimeout,
				})
				if err != nil {
					return err
				}
				sender = resend
			}

			svc := order.NewService(sender, nil, order.Config{
				FromEmail: cfg.FromEmail,
				ToEmail:   cfg.ToEmail,
			}, root.logger)

			id, err := svc.SendTest(cmd.Context())
			if errors.Is(err, order.ErrMailNotConfigured) {
				return errors.New("no RESEND_API_KEY configured")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent test email to %s (id %s)\n", cfg.ToEmail, id)
			return nil
		},
	}
}
