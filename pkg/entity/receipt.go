package entity

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"

	"github.com/yourorg/mptproof/pkg/rlp"
)

// ReceiptPartial holds the receipt fields a caller wants asserted.
// Which of Status and PostState applies depends on the block height:
// receipts before the Byzantium fork carry an intermediate state root,
// receipts after it carry a one-byte status.
type ReceiptPartial struct {
	Status            uint64
	PostState         common.Hash
	CumulativeGasUsed uint64
	Bloom             types.Bloom
}

const receiptFieldCount = 4

// byzantiumBlock is mainnet's fork height. The layout switch is a fact
// of chain history, not a tunable.
var byzantiumBlock = params.MainnetChainConfig.ByzantiumBlock

// SplitReceiptEnvelope separates a stored receipt into its transaction
// type and RLP payload. Typed receipts carry the same leading type byte
// as their transactions; legacy receipts are a bare list.
func SplitReceiptEnvelope(env []byte) (TxType, []byte, error) {
	if len(env) == 0 {
		return 0, nil, fmt.Errorf("%w: empty", ErrEnvelope)
	}
	if env[0] >= 0xc0 {
		return LegacyTxType, env, nil
	}
	t := TxType(env[0])
	switch t {
	case AccessListTxType, DynamicFeeTxType, BlobTxType, SetCodeTxType:
		return t, env[1:], nil
	}
	return 0, nil, fmt.Errorf("%w: type byte %#x", ErrUnknownType, env[0])
}

// CheckReceipt decodes payload as the 4-field receipt layout of the
// given block height and asserts equality with want. The first field is
// compared as a state root before Byzantium and as a status afterwards.
func CheckReceipt(payload []byte, blockNumber uint64, want ReceiptPartial) error {
	w := rlp.NewWindow(payload)
	fields, err := rlp.DecodeList(w, receiptFieldCount)
	if err != nil {
		return err
	}
	if len(fields) != receiptFieldCount {
		return fmt.Errorf("%w: receipt has %d fields", ErrFieldCount, len(fields))
	}

	byzantium := byzantiumBlock != nil && byzantiumBlock.Cmp(new(big.Int).SetUint64(blockNumber)) <= 0
	if byzantium {
		status, err := fieldUint64(w, fields[0])
		if err != nil {
			return err
		}
		if status != want.Status {
			return fmt.Errorf("%w: decoded %d, want %d", ErrStatusMismatch, status, want.Status)
		}
	} else {
		if err := fieldHashEqual(w, fields[0], want.PostState, ErrStateRootMismatch); err != nil {
			return err
		}
	}

	gas, err := fieldUint64(w, fields[1])
	if err != nil {
		return err
	}
	if gas != want.CumulativeGasUsed {
		return fmt.Errorf("%w: decoded %d, want %d", ErrGasUsedMismatch, gas, want.CumulativeGasUsed)
	}

	bloomWin, err := w.Frag(fields[2])
	if err != nil {
		return err
	}
	if bloomWin.Len() != types.BloomByteLength || !bytes.Equal(bloomWin.Bytes(), want.Bloom.Bytes()) {
		return fmt.Errorf("%w: decoded %d bytes", ErrBloomMismatch, bloomWin.Len())
	}

	// The logs position must at least be a list; log contents are not
	// compared here.
	if fields[3].Kind != rlp.KindList {
		return fmt.Errorf("%w: logs position holds a string", ErrFieldCount)
	}
	return nil
}
