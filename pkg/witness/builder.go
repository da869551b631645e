// Package witness turns eth_getProof responses into the bounded inputs
// the verifier consumes, and bundles them with the typed entities the
// caller expects to find under the proven roots.
package witness

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrlp "github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/yourorg/mptproof/internal/logger"
	"github.com/yourorg/mptproof/pkg/entity"
	"github.com/yourorg/mptproof/pkg/mpt"
)

// StorageBundle is one storage slot ready for verification against the
// account's storage hash.
type StorageBundle struct {
	Key      common.Hash
	Value    *uint256.Int
	ValueRLP []byte // empty for a zero-valued slot
	Proof    *mpt.Proof
}

// Bundle carries everything needed to verify one account and its
// storage slots against a state root.
type Bundle struct {
	StateRoot   common.Hash
	Address     common.Address
	Account     entity.Account
	AccountRLP  []byte
	Proof       *mpt.Proof
	Storage     []StorageBundle
	BlockNumber uint64
}

// Build fetches the proof bundle for (account, slotKeys) at a block
// height over the given RPC endpoint.
func Build(
	ctx context.Context,
	rpcURL string,
	block uint64,
	account common.Address,
	slotKeys []common.Hash,
) (*Bundle, error) {

	cli, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	res, err := FetchProof(ctx, cli, account, slotKeys, block)
	if err != nil {
		return nil, err
	}
	root, err := FetchStateRoot(ctx, cli, block)
	if err != nil {
		return nil, err
	}
	return Assemble(res, root, block)
}

// FromFixture loads a previously captured eth_getProof response from a
// JSON file.
func FromFixture(path string) (*ProofResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var res ProofResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("unmarshal fixture: %w", err)
	}
	return &res, nil
}

// Assemble converts a proof response into bounded verifier inputs.
// Bound violations (too deep, oversized nodes) surface here, before
// any verification runs.
func Assemble(res *ProofResult, stateRoot common.Hash, block uint64) (*Bundle, error) {
	log := logger.Logger()

	accountProof, err := mpt.NewProof(toNodes(res.AccountProof), mpt.AccountBounds)
	if err != nil {
		return nil, fmt.Errorf("account proof: %w", err)
	}

	account := entity.Account{
		Nonce:       uint64(res.Nonce),
		Balance:     mustUint256(res.Balance),
		StorageHash: res.StorageHash,
		CodeHash:    res.CodeHash,
	}
	accountRLP, err := encodeAccount(account)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		StateRoot:   stateRoot,
		Address:     res.Address,
		Account:     account,
		AccountRLP:  accountRLP,
		Proof:       accountProof,
		BlockNumber: block,
	}

	for i, sp := range res.StorageProof {
		proof, err := mpt.NewProof(toNodes(sp.Proof), mpt.StorageBounds)
		if err != nil {
			return nil, fmt.Errorf("storage proof %d: %w", i, err)
		}
		value := mustUint256(sp.Value)
		valueRLP := []byte{}
		if !value.IsZero() {
			valueRLP, err = gethrlp.EncodeToBytes(value.ToBig())
			if err != nil {
				return nil, err
			}
		}
		b.Storage = append(b.Storage, StorageBundle{
			Key:      common.BytesToHash(sp.Key),
			Value:    value,
			ValueRLP: valueRLP,
			Proof:    proof,
		})
	}

	log.Debug().
		Stringer("address", res.Address).
		Int("accountNodes", len(res.AccountProof)).
		Int("slots", len(res.StorageProof)).
		Msg("assembled proof bundle")
	return b, nil
}

// Verify runs the whole chain: account inclusion under the state root,
// account field validation, and every storage slot under the account's
// storage hash.
func (b *Bundle) Verify() error {
	if err := mpt.VerifyAccountProof(b.StateRoot, b.Address, b.AccountRLP, b.Proof); err != nil {
		return fmt.Errorf("account inclusion: %w", err)
	}
	if err := entity.CheckAccount(b.AccountRLP, b.Account); err != nil {
		return fmt.Errorf("account fields: %w", err)
	}
	for i, s := range b.Storage {
		if s.Value.IsZero() {
			// An empty slot comes with an exclusion proof, which this
			// verifier does not cover.
			return fmt.Errorf("storage slot %d (%x) is empty; exclusion proofs are out of scope", i, s.Key)
		}
		if err := mpt.VerifyStorageProof(b.Account.StorageHash, s.Key, s.ValueRLP, s.Proof); err != nil {
			return fmt.Errorf("storage slot %d: %w", i, err)
		}
	}
	return nil
}

func toNodes(hexNodes []hexutil.Bytes) [][]byte {
	nodes := make([][]byte, len(hexNodes))
	for i, n := range hexNodes {
		nodes[i] = n
	}
	return nodes
}

func mustUint256(v *hexutil.Big) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	out, _ := uint256.FromBig((*big.Int)(v))
	return out
}

// encodeAccount reproduces the state-trie account body the proof's
// leaf must store.
func encodeAccount(a entity.Account) ([]byte, error) {
	return gethrlp.EncodeToBytes([]interface{}{
		a.Nonce, a.Balance.ToBig(), a.StorageHash, a.CodeHash,
	})
}
