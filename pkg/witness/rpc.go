package witness

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
)

// FetchProof calls eth_getProof for account and the given slot keys at
// a block height.
func FetchProof(
	ctx context.Context,
	cli *ethclient.Client,
	account common.Address,
	slotKeys []common.Hash,
	block uint64,
) (*ProofResult, error) {

	keys := make([]string, len(slotKeys))
	for i, k := range slotKeys {
		keys[i] = k.Hex()
	}

	var p ProofResult
	err := cli.Client().CallContext(
		ctx, &p, "eth_getProof",
		account,
		keys,
		hexutil.Uint64(block),
	)
	return &p, err
}

// FetchStateRoot returns the state root of the block at the given
// height.
func FetchStateRoot(ctx context.Context, cli *ethclient.Client, block uint64) (common.Hash, error) {
	hdr, err := cli.HeaderByNumber(ctx, new(big.Int).SetUint64(block))
	if err != nil {
		return common.Hash{}, err
	}
	return hdr.Root, nil
}
