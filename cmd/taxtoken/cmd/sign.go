package cmd

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MinterTeam/taxtoken/coreV2/transaction"
	"github.com/MinterTeam/taxtoken/crypto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	tmOS "github.com/tendermint/tendermint/libs/os"
)

var KeyCommand = &cobra.Command{
	Use:   "key",
	Short: "Generate a secp256k1 key and print its address",
	RunE:  generateKey,
}

var SignCommand = &cobra.Command{
	Use:   "sign",
	Short: "Sign a JSON transaction read from --tx or stdin",
	RunE:  signTx,
}

func init() {
	KeyCommand.Flags().String("output", "", "key file to write")

	SignCommand.Flags().String("key", "", "file holding the hex private key")
	SignCommand.Flags().Uint64("nonce", 0, "nonce of the transaction, last nonce of the sender plus one")
	SignCommand.Flags().String("tx", "", "file holding the unsigned transaction")
}

func generateKey(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		return errors.New("--output is required")
	}
	if tmOS.FileExists(output) {
		return errors.Errorf("%s already exists", output)
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(hex.EncodeToString(crypto.FromECDSA(key))), 0600); err != nil {
		return errors.Wrap(err, "write key")
	}

	fmt.Fprintln(cmd.OutOrStdout(), crypto.PubkeyToAddress(key.PublicKey).String())
	return nil
}

func signTx(cmd *cobra.Command, args []string) error {
	keyFile, err := cmd.Flags().GetString("key")
	if err != nil {
		return err
	}
	key, err := readKey(keyFile)
	if err != nil {
		return err
	}

	nonce, err := cmd.Flags().GetUint64("nonce")
	if err != nil {
		return err
	}

	raw, err := readTx(cmd)
	if err != nil {
		return err
	}

	tx, err := transaction.NewExecutor(transaction.GetData, nil).DecodeUnsigned(raw)
	if err != nil {
		return errors.Wrap(err, "decode transaction")
	}
	tx.Nonce = nonce

	if err := tx.Sign(key); err != nil {
		return errors.Wrap(err, "sign transaction")
	}

	signed, err := transaction.EncodeToJSON(tx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(signed))
	return nil
}

func readKey(path string) (*ecdsa.PrivateKey, error) {
	if path == "" {
		return nil, errors.New("--key is required")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(string(content)), "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "key in %s", path)
	}

	return key, nil
}

func readTx(cmd *cobra.Command) ([]byte, error) {
	path, err := cmd.Flags().GetString("tx")
	if err != nil {
		return nil, err
	}

	if path != "" {
		return os.ReadFile(path)
	}

	return io.ReadAll(cmd.InOrStdin())
}
