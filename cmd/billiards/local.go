package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

// newLocalCmd exposes the account store that keeps records without a backend.
func newLocalCmd(c *cli) *cobra.Command {
	local := &cobra.Command{
		Use:   "local",
		Short: "Manage players in the local record store",
	}

	var organization string
	register := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create a local player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.container.Accounts.AddUser(cmd.Context(), usecase.RegisterPayload{
				Username:     args[0],
				Password:     args[1],
				Organization: organization,
			})
			if err != nil {
				if usecase.IsUsernameTaken(err) {
					return fmt.Errorf("username %s is already taken", args[0])
				}
				return err
			}
			fmt.Fprintln(c.out, resp.Message)
			return nil
		},
	}
	register.Flags().StringVar(&organization, "org", "", "organization the player belongs to")

	login := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Sign in against the local store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.container.Accounts.Authenticate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "login failed")
			}
			fmt.Fprintln(c.out, resp.Message)
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.container.Accounts.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "logged out")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the locally signed-in player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := c.container.Accounts.CurrentUser()
			if !ok {
				return fmt.Errorf("no local session: run `billiards local login <username> <password>`")
			}
			printProfile(c.out, profile)
			return nil
		},
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List local players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := c.container.Accounts.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return printLeaderboard(c.out, profiles)
		},
	}

	org := &cobra.Command{
		Use:   "org <username> <organization>",
		Short: "Change a local player's organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.container.Accounts.UpdateOrganization(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "update failed")
			}
			fmt.Fprintln(c.out, resp.Message)
			return nil
		},
	}

	var input matchInput
	match := &cobra.Command{
		Use:   "match <username>",
		Short: "Record a match for a local player",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return input.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile, ok, err := c.container.Accounts.GetUser(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("player %s not found", args[0])
			}
			resp, err := c.container.Accounts.UpdateUser(ctx, user.Record{
				Username:     profile.Username,
				Organization: profile.Organization,
				Stats:        input.apply(profile.Stats),
			})
			if err != nil {
				return err
			}
			if !resp.Success || resp.User == nil {
				return envelopeError(resp.Message, "update failed")
			}
			printProfile(c.out, *resp.User)
			return nil
		},
	}
	input.bind(match)

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a local player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.container.Accounts.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "delete failed")
			}
			fmt.Fprintln(c.out, resp.Message)
			return nil
		},
	}

	local.AddCommand(register, login, logout, whoami, users, org, match, del)
	return local
}
