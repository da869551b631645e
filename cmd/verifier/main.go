package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yourorg/mptproof/internal/logger"
	"github.com/yourorg/mptproof/pkg/slot"
	"github.com/yourorg/mptproof/pkg/witness"
)

func newRootCmd() *cobra.Command {
	var (
		rpcURL    string
		blockNum  uint64
		accountS  string
		slotKeyS  string
		mapKeyS   string
		slotIndex uint64
		quiet     bool
	)

	rootCmd := &cobra.Command{
		Use:   "verifier",
		Short: "Fetch an account/storage proof over RPC and verify it against the block's state root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if quiet {
				logger.Disable()
			}
			log := logger.Logger()

			if rpcURL == "" {
				_ = godotenv.Load()
				rpcURL = os.Getenv("ETH_RPC_URL")
				if rpcURL == "" {
					return fmt.Errorf("--rpc flag or ETH_RPC_URL env var is required")
				}
			}

			account := common.HexToAddress(accountS)

			var slotKeys []common.Hash
			switch {
			case slotKeyS != "":
				slotKeys = []common.Hash{common.HexToHash(slotKeyS)}
			case mapKeyS != "":
				key, err := uint256.FromHex(mapKeyS)
				if err != nil {
					return fmt.Errorf("--mapkey: %w", err)
				}
				slotKeys = []common.Hash{slot.ForMapping(key, slotIndex)}
			}

			bundle, err := witness.Build(cmd.Context(), rpcURL, blockNum, account, slotKeys)
			if err != nil {
				return err
			}

			if err := bundle.Verify(); err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			log.Info().
				Stringer("address", account).
				Stringer("stateRoot", bundle.StateRoot).
				Uint64("block", blockNum).
				Int("slots", len(bundle.Storage)).
				Msg("proof verified")
			fmt.Println("proof verified")
			return nil
		},
	}

	rootCmd.Flags().StringVar(&rpcURL, "rpc", "", "Archive RPC URL")
	rootCmd.Flags().Uint64Var(&blockNum, "block", 0, "Block number")
	rootCmd.Flags().StringVar(&accountS, "account", "", "Account address")
	rootCmd.Flags().StringVar(&slotKeyS, "slot", "", "Raw storage slot key (hex hash)")
	rootCmd.Flags().StringVar(&mapKeyS, "mapkey", "", "Mapping key (hex), combined with --mapslot")
	rootCmd.Flags().Uint64Var(&slotIndex, "mapslot", 0, "Mapping declaration slot index")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress log output")
	_ = rootCmd.MarkFlagRequired("account")
	rootCmd.MarkFlagsMutuallyExclusive("slot", "mapkey")

	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log := logger.Logger()
		log.Fatal().Err(err).Msg("verifier failed")
	}
}
