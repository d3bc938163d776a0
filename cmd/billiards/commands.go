package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/billiards-tracker/internal/interfaces/navigation"
)

const (
	pageDashboard = "/pages/dashboard/dashboard"
	pageMatch     = "/pages/match/match"
	pageProfile   = "/pages/user/profile"
	pageRegister  = "/pages/register/register"
)

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "billiards",
		Short:         "Track billiards players, matches and organizations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.AddCommand(
		newStatusCmd(c),
		newRegisterCmd(c),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newDashboardCmd(c),
		newMatchCmd(c),
		newOrgCmd(c),
		newUsersCmd(c),
		newUserCmd(c),
		newDeleteUserCmd(c),
		newWatchCmd(c),
		newLocalCmd(c),
	)
	return root
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend reachability and the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !c.container.Sessions.InitializeConnection(ctx) {
				fmt.Fprintln(c.out, "backend: unreachable")
				return nil
			}
			_, endpoint := c.container.API.Pool().Current()
			fmt.Fprintf(c.out, "backend: %s\n", endpoint)

			if profile, ok := c.container.Sessions.GetCurrentUser(ctx, false); ok && c.container.Sessions.IsLoggedIn(ctx) {
				fmt.Fprintf(c.out, "session: %s\n", profile.Username)
				return nil
			}
			fmt.Fprintln(c.out, "session: none")
			return nil
		},
	}
}

func newRegisterCmd(c *cli) *cobra.Command {
	var organization string
	cmd := &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.enterPage(ctx, pageRegister); err != nil {
				return err
			}
			resp, err := c.container.Sessions.Register(ctx, args[0], args[1], organization)
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "registration failed")
			}
			fmt.Fprintf(c.out, "registered %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&organization, "org", "", "organization the player belongs to")
	return cmd
}

func newLoginCmd(c *cli) *cobra.Command {
	var returnURL string
	cmd := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.container.Navigator.NavigateTo(ctx, navigation.LoginPage); err != nil {
				return err
			}
			resp, err := c.container.Sessions.Login(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !resp.Success || resp.User == nil {
				return envelopeError(resp.Message, "login failed")
			}
			fmt.Fprintf(c.out, "logged in as %s\n", resp.User.Username)

			target := returnURL
			if target == "" {
				target = pageDashboard
			}
			return c.container.Navigator.RedirectTo(ctx, target)
		},
	}
	cmd.Flags().StringVar(&returnURL, "return-url", "", "page to open after signing in")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, err := c.container.Sessions.Logout(ctx)
			if navErr := c.container.Navigator.ReLaunch(ctx, navigation.LoginPage); navErr != nil && err == nil {
				err = navErr
			}
			if err != nil {
				return fmt.Errorf("logged out locally, server logout failed: %w", err)
			}
			fmt.Fprintln(c.out, "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"profile"},
		Short:   "Show the signed-in player",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.enterPage(cmd.Context(), pageProfile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := c.container.Sessions.GetCurrentUser(cmd.Context(), true)
			if !ok {
				return errLoginRequired
			}
			printProfile(c.out, profile)
			return nil
		},
	}
}

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.enterPage(cmd.Context(), pageDashboard)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if profile, ok := c.container.Sessions.GetCurrentUser(ctx, false); ok {
				fmt.Fprintf(c.out, "signed in as %s\n\n", profile.Username)
			}
			return printLeaderboard(c.out, c.container.Sessions.ListUsers(ctx))
		},
	}
}

func newMatchCmd(c *cli) *cobra.Command {
	var input matchInput
	cmd := &cobra.Command{
		Use:   "match <username>",
		Short: "Record a match result for a player",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := input.validate(); err != nil {
				return err
			}
			return c.enterPage(cmd.Context(), pageMatch)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile, ok := c.container.Sessions.GetUserInfo(ctx, args[0])
			if !ok {
				return fmt.Errorf("player %s not found", args[0])
			}
			resp, err := c.container.Sessions.UpdateUserStats(ctx, profile.Username, input.apply(profile.Stats))
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "update failed")
			}
			if resp.User != nil {
				printProfile(c.out, *resp.User)
			} else {
				fmt.Fprintf(c.out, "recorded match for %s\n", profile.Username)
			}
			return nil
		},
	}
	input.bind(cmd)
	return cmd
}

func newOrgCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "org <organization>",
		Short: "Change the signed-in player's organization",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.enterPage(cmd.Context(), pageProfile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile, ok := c.container.Sessions.GetCurrentUser(ctx, false)
			if !ok {
				return errLoginRequired
			}
			resp, err := c.container.Sessions.UpdateOrganization(ctx, profile.Username, args[0])
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "update failed")
			}
			fmt.Fprintf(c.out, "organization set to %s\n", args[0])
			return nil
		},
	}
}

func newUsersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printUsers(c.out, c.container.Sessions.ListUsers(cmd.Context()))
		},
	}
}

func newUserCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "user <username>",
		Short: "Show one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := c.container.Sessions.GetUserInfo(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("player %s not found", args[0])
			}
			printProfile(c.out, profile)
			return nil
		},
	}
}

func newDeleteUserCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <username>",
		Short: "Delete a player account",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.enterPage(cmd.Context(), pageProfile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.container.Sessions.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !resp.Success {
				return envelopeError(resp.Message, "delete failed")
			}
			fmt.Fprintf(c.out, "deleted %s\n", args[0])
			return nil
		},
	}
}

func envelopeError(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return errors.New(message)
}
