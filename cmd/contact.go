package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/app"
	"github.com/Zachkp/portfolio/internal/forms"
	"github.com/Zachkp/portfolio/internal/httpclient"
)

var contactMsg api.ContactMessage

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := contactMsg
		if errs := forms.ValidateContact(&msg); len(errs) > 0 {
			for _, field := range []string{forms.FieldName, forms.FieldEmail, forms.FieldSubject, forms.FieldMessage} {
				if m, ok := errs[field]; ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", errorStyle.Render(field+":"), m)
				}
			}
			return errs
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			res, err := a.Contact.Send(ctx, msg)
			if err != nil {
				if m := httpclient.ServerMessage(err); m != "" {
					return errors.New(m)
				}
				return fmt.Errorf("send message: %w", describe(err, ""))
			}
			if !res.Success {
				return errors.New(nonEmpty(res.Message, "Failed to send message"))
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(nonEmpty(res.Message, "Your message has been sent successfully.")))
			return nil
		})
	},
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func init() {
	f := contactCmd.Flags()
	f.StringVar(&contactMsg.Name, "name", "", "your name")
	f.StringVar(&contactMsg.Email, "email", "", "your email address")
	f.StringVar(&contactMsg.Subject, "subject", "", "subject line")
	f.StringVarP(&contactMsg.Message, "message", "m", "", "message body")
	rootCmd.AddCommand(contactCmd)
}
