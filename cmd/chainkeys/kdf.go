package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-chainkeys/internal/keys"
	"github.com/smallyu/go-chainkeys/internal/protocol/kdf"
)

func (a *app) kdfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kdf",
		Short: "Shared secret key derivation",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		a.kdfSecretCmd(),
		a.kdfDeriveCmd(),
	)
	return cmd
}

func (a *app) kdfSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Sign the peer public key and encrypt it under the ECDH session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownHex, _ := cmd.Flags().GetString("own")
			peer, _ := cmd.Flags().GetString("peer")

			policy, err := a.policy()
			if err != nil {
				return err
			}
			own, err := keys.FromHex(policy, ownHex)
			if err != nil {
				return err
			}
			gen, err := kdf.New(own, peer)
			if err != nil {
				return err
			}
			secret, err := gen.GenerateSharedSecret(own, peer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().String("own", "", "own private key hex")
	cmd.Flags().String("peer", "", "peer X||Y public key hex")
	cmd.MarkFlagRequired("own")
	cmd.MarkFlagRequired("peer")
	return cmd
}

func (a *app) kdfDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Verify a shared secret and print the derived key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ownHex, _ := cmd.Flags().GetString("own")
			signer, _ := cmd.Flags().GetString("signer")
			secret, _ := cmd.Flags().GetString("secret")

			policy, err := a.policy()
			if err != nil {
				return err
			}
			own, err := keys.FromHex(policy, ownHex)
			if err != nil {
				return err
			}
			gen, err := kdf.New(own, signer)
			if err != nil {
				return err
			}
			kp, err := gen.NewKeyPair(policy, secret, signer, own.EntirePubValue())
			if err != nil {
				return err
			}
			log.Infof("derived new %s key pair", policy.Name())
			return printKeyPair(cmd.OutOrStdout(), kp)
		},
	}
	cmd.Flags().String("own", "", "own private key hex")
	cmd.Flags().String("signer", "", "signer X||Y public key hex")
	cmd.Flags().String("secret", "", "shared secret hex")
	cmd.MarkFlagRequired("own")
	cmd.MarkFlagRequired("signer")
	cmd.MarkFlagRequired("secret")
	return cmd
}
