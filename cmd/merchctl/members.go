package main

import (
	"fmt"

	"github.com/spf13/cobra"

	memberrepo "github.com/dbhs-alumni/merchstore/internal/repository/member"
)

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin EMAIL...",
	Short: "Add addresses to the admin allow-list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := memberrepo.New(current.store).GrantAdmin(cmd.Context(), args...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "granted admin to %d address(es)\n", len(args))
		return nil
	},
}

var revokeAdminCmd = &cobra.Command{
	Use:   "revoke-admin EMAIL...",
	Short: "Remove addresses from the admin allow-list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := memberrepo.New(current.store).RevokeAdmin(cmd.Context(), args...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "revoked admin from %d address(es)\n", len(args))
		return nil
	},
}

var addAlumniCmd = &cobra.Command{
	Use:   "add-alumni EMAIL...",
	Short: "Add addresses to the alumni records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := memberrepo.New(current.store).AddAlumni(cmd.Context(), args...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %d alumni address(es)\n", len(args))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grantAdminCmd, revokeAdminCmd, addAlumniCmd)
}
