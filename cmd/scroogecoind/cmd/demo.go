package cmd

import (
	"crypto/ed25519"
	"fmt"

	"github.com/scroogecoin/core/chain"
	"github.com/scroogecoin/core/ledger"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted scenario end to end: mine a genesis, split a coin, mine it in, print the UTXO set",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	scrooge := mustKeypair()
	alice := mustKeypair()
	bob := mustKeypair()

	params := chain.DefaultParams()
	genesisCoinbase := ledger.NewCoinbaseTransaction(params.CoinbaseValue, scrooge.pub, 0)
	genesis := ledger.NewGenesisBlock(genesisCoinbase)
	genesis.Seal()

	bc := chain.NewBlockChain(genesis, params, nil, log)
	handler := chain.NewBlockHandler(bc, log)

	splitTx := ledger.NewTransaction()
	inIdx := splitTx.AddInput(genesisCoinbase.ID(), 0)
	splitTx.AddOutput(params.CoinbaseValue/2, alice.pub)
	splitTx.AddOutput(params.CoinbaseValue-params.CoinbaseValue/2, bob.pub)
	splitTx.AddSignature(inIdx, scrooge.sign(splitTx, inIdx))
	splitTx.Seal()

	handler.AddTransaction(splitTx)

	block := handler.CreateBlock(scrooge.pub)
	if !handler.ProcessBlock(block) {
		return fmt.Errorf("demo: assembled block %s was rejected", block.ID())
	}

	fmt.Printf("chain height: %d\n", bc.BestTip().Height)
	fmt.Printf("best tip:     %s\n", bc.MaxHeightBlock().ID())
	fmt.Println("spendable outputs:")
	bc.MaxHeightUTXOPool().ForEach(func(op ledger.OutPoint, out ledger.Output) {
		fmt.Printf("  %s -> value=%d recipient=%x\n", op, out.Value, out.Recipient)
	})
	return nil
}

type demoKeypair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

func mustKeypair() demoKeypair {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return demoKeypair{pub: pub, priv: priv}
}

func (k demoKeypair) sign(tx *ledger.Transaction, inputIndex int) []byte {
	return ed25519.Sign(k.priv, tx.RawDataToSign(inputIndex))
}
