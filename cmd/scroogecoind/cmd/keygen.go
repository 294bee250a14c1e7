package cmd

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an ed25519 keypair and print it hex-encoded",
	RunE: func(cmd *cobra.Command, args []string) error {
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return err
		}
		fmt.Printf("public:  %s\n", hex.EncodeToString(pub))
		fmt.Printf("private: %s\n", hex.EncodeToString(priv))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
