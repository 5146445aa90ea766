package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/CypherPun/hnsd/consensus"
	"github.com/CypherPun/hnsd/trie"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	// Output to stdout instead of the default stderr
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

var rootCmd = &cobra.Command{
	Use:   "hnsd",
	Short: "Light-client verification of headers and trie proofs",
}

var verifyHeaderCmd = &cobra.Command{
	Use:   "verify-header <hex>",
	Short: "Decode a serialized header and check its proof of work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return err
		}

		hdr := consensus.NewHeader()
		if err := hdr.Decode(raw); err != nil {
			return err
		}

		if err := hdr.VerifyPOW(); err != nil {
			return err
		}

		logrus.Infof("header %s: pow ok", hdr.Hash())
		return nil
	},
}

var verifyProofCmd = &cobra.Command{
	Use:   "verify-proof <root-hex> <name> <node-hex>...",
	Short: "Verify a trie proof for a name against a trusted root",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := hex.DecodeString(args[0])
		if err != nil {
			return err
		}

		nodes := make([][]byte, 0, len(args)-2)
		for _, arg := range args[2:] {
			blob, err := hex.DecodeString(arg)
			if err != nil {
				return err
			}
			nodes = append(nodes, blob)
		}

		value, err := trie.VerifyName(root, args[1], nodes)
		if err != nil {
			return err
		}

		if value == nil {
			logrus.Infof("name %q: proven absent", args[1])
			return nil
		}

		fmt.Println(hex.EncodeToString(value))
		return nil
	},
}

func main() {
	rootCmd.AddCommand(verifyHeaderCmd, verifyProofCmd)

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
