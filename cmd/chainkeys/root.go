package main

import (
	"fmt"
	"io"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-chainkeys/internal/keys"
)

var log = logging.Logger("chainkeys")

type app struct {
	cfg *Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:               "chainkeys",
		Short:             "Chain key, address, KDF and ElGamal tools",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	cmd.PersistentFlags().String("config", "", "path to a TOML config file")
	cmd.PersistentFlags().String("chain", "", "chain policy (btc|eth), overrides the config")

	cmd.AddCommand(
		a.addressCmd(),
		a.kdfCmd(),
		a.elgamalCmd(),
	)
	return cmd
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if chain, _ := cmd.Flags().GetString("chain"); chain != "" {
		cfg.Chain = chain
	}
	if err := logging.SetLogLevel("*", cfg.LogLevel); err != nil {
		return errors.Wrapf(err, "config: log level %q", cfg.LogLevel)
	}
	a.cfg = cfg
	return nil
}

func (a *app) policy() (keys.Policy, error) {
	return keys.PolicyByName(a.cfg.Chain)
}

func printKeyPair(w io.Writer, kp *keys.KeyPair) error {
	addr, err := kp.Address()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "chain    %s\n", kp.Policy().Name())
	fmt.Fprintf(w, "private  %s\n", kp.PrivateKeyHex())
	fmt.Fprintf(w, "public   %s\n", kp.EntirePubValue())
	fmt.Fprintf(w, "used     %s\n", kp.UsedPubKeyValue())
	fmt.Fprintf(w, "address  %s\n", addr)
	return nil
}
