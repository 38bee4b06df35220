package main

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-chainkeys/internal/crypto/elgamal"
	"github.com/smallyu/go-chainkeys/internal/crypto/numtheory"
	"github.com/smallyu/go-chainkeys/pkg/chainkeys"
)

func (a *app) elgamalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elgamal",
		Short: "ElGamal over a safe prime group",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		a.elgamalParamsCmd(),
		a.elgamalKeygenCmd(),
		a.elgamalEncryptCmd(),
		a.elgamalDecryptCmd(),
	)
	return cmd
}

func (a *app) elgamalParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Generate a safe prime and generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg.ElGamal
			params, err := elgamal.GenerateParams(rand.Reader, c.SafePrimeBits, c.Rounds, c.GeneratorAttempts)
			if err != nil {
				return err
			}
			log.Infof("generated %d-bit elgamal group", params.P.BitLen())
			fmt.Fprintf(cmd.OutOrStdout(), "prime      %x\n", params.P)
			fmt.Fprintf(cmd.OutOrStdout(), "generator  %x\n", params.G)
			return nil
		},
	}
}

func (a *app) elgamalKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key under the configured group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			priv, err := elgamal.GenerateKey(rand.Reader, params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "private  %x\n", priv.X)
			fmt.Fprintf(cmd.OutOrStdout(), "public   %x\n", priv.Y)
			return nil
		},
	}
}

func (a *app) elgamalEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt a decimal integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pubHex, _ := cmd.Flags().GetString("pub")
			additive, _ := cmd.Flags().GetBool("additive")

			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			y, err := parseHexInt("public value", pubHex)
			if err != nil {
				return err
			}
			pub, err := elgamal.NewPublicKey(params, y)
			if err != nil {
				return err
			}
			m, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return chainkeys.NewDecodeError("message", args[0], errors.New("not a decimal integer"))
			}

			var c *elgamal.Ciphertext
			if additive {
				c, err = pub.EncryptAdditive(rand.Reader, m)
			} else {
				c, err = pub.Encrypt(rand.Reader, m)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "a  %x\n", c.A)
			fmt.Fprintf(cmd.OutOrStdout(), "b  %x\n", c.B)
			return nil
		},
	}
	cmd.Flags().String("pub", "", "public value hex")
	cmd.Flags().Bool("additive", false, "encrypt g^m")
	cmd.MarkFlagRequired("pub")
	return cmd
}

func (a *app) elgamalDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a ciphertext pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			privHex, _ := cmd.Flags().GetString("priv")
			aHex, _ := cmd.Flags().GetString("a")
			bHex, _ := cmd.Flags().GetString("b")
			additive, _ := cmd.Flags().GetBool("additive")

			params, err := a.cfg.Params()
			if err != nil {
				return err
			}
			x, err := parseSecretHexInt("private exponent", privHex)
			if err != nil {
				return err
			}
			priv, err := elgamal.NewPrivateKey(params, x)
			if err != nil {
				return err
			}
			ca, err := parseHexInt("ciphertext a", aHex)
			if err != nil {
				return err
			}
			cb, err := parseHexInt("ciphertext b", bHex)
			if err != nil {
				return err
			}
			c := &elgamal.Ciphertext{A: ca, B: cb}

			var m *big.Int
			if additive {
				bsgs, err := numtheory.NewBabyStepGiantStepWithBound(params.P, params.G, a.cfg.BSGS.Bound)
				if err != nil {
					return err
				}
				m, err = priv.DecryptAdditive(c, bsgs)
				if err != nil {
					return err
				}
			} else {
				m, err = priv.Decrypt(c)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.String())
			return nil
		},
	}
	cmd.Flags().String("priv", "", "private exponent hex")
	cmd.Flags().String("a", "", "ciphertext component a (hex)")
	cmd.Flags().String("b", "", "ciphertext component b (hex)")
	cmd.Flags().Bool("additive", false, "recover m from g^m")
	cmd.MarkFlagRequired("priv")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")
	return cmd
}

func parseSecretHexInt(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, chainkeys.NewSecretDecodeError(field, s, errors.New("not hex"))
	}
	return v, nil
}

func parseHexInt(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, chainkeys.NewDecodeError(field, s, errors.New("not hex"))
	}
	return v, nil
}
