package main

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-chainkeys/internal/keys"
)

func (a *app) addressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Key pair and address management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		a.addressNewCmd(),
		a.addressImportCmd(),
		a.addressValidateCmd(),
	)
	return cmd
}

func (a *app) addressNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a random key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := a.policy()
			if err != nil {
				return err
			}
			kp, err := keys.Generate(policy, rand.Reader)
			if err != nil {
				return err
			}
			return printKeyPair(cmd.OutOrStdout(), kp)
		},
	}
}

func (a *app) addressImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <private key hex>",
		Short: "Import a 64 character hex private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := a.policy()
			if err != nil {
				return err
			}
			kp, err := keys.FromHex(policy, args[0])
			if err != nil {
				return err
			}
			return printKeyPair(cmd.OutOrStdout(), kp)
		},
	}
}

func (a *app) addressValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <address>",
		Short: "Check an address format and checksum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := a.policy()
			if err != nil {
				return err
			}
			if err := keys.ValidateAddress(policy, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}
