package entity

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

const (
	preByzantiumBlock  = 4_000_000
	postByzantiumBlock = 20_000_000
)

func marshalReceipt(t *testing.T, r *types.Receipt) []byte {
	t.Helper()
	enc, err := r.MarshalBinary()
	require.NoError(t, err)
	return enc
}

func TestCheckReceiptPostByzantium(t *testing.T) {
	r := &types.Receipt{
		Type:              types.LegacyTxType,
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 21000,
	}
	txType, payload, err := SplitReceiptEnvelope(marshalReceipt(t, r))
	require.NoError(t, err)
	require.Equal(t, LegacyTxType, txType)

	want := ReceiptPartial{Status: 1, CumulativeGasUsed: 21000}
	require.NoError(t, CheckReceipt(payload, postByzantiumBlock, want))

	t.Run("failed status", func(t *testing.T) {
		failed := &types.Receipt{
			Type:              types.LegacyTxType,
			Status:            types.ReceiptStatusFailed,
			CumulativeGasUsed: 21000,
		}
		_, payload, err := SplitReceiptEnvelope(marshalReceipt(t, failed))
		require.NoError(t, err)
		require.NoError(t, CheckReceipt(payload, postByzantiumBlock, ReceiptPartial{Status: 0, CumulativeGasUsed: 21000}))
	})
}

func TestCheckReceiptPreByzantium(t *testing.T) {
	root := common.HexToHash("0x1122334455667788112233445566778811223344556677881122334455667788")
	r := &types.Receipt{
		Type:              types.LegacyTxType,
		PostState:         root.Bytes(),
		CumulativeGasUsed: 50000,
	}
	_, payload, err := SplitReceiptEnvelope(marshalReceipt(t, r))
	require.NoError(t, err)

	want := ReceiptPartial{PostState: root, CumulativeGasUsed: 50000}
	require.NoError(t, CheckReceipt(payload, preByzantiumBlock, want))

	// The same payload read with the post-fork layout fails at the first
	// field: a 32-byte root is not a status integer.
	err = CheckReceipt(payload, postByzantiumBlock, ReceiptPartial{Status: 1, CumulativeGasUsed: 50000})
	require.ErrorIs(t, err, ErrIntegerWidth)

	// And a post-fork payload has no root at the first position.
	status := &types.Receipt{Type: types.LegacyTxType, Status: 1, CumulativeGasUsed: 50000}
	_, statusPayload, err := SplitReceiptEnvelope(marshalReceipt(t, status))
	require.NoError(t, err)
	err = CheckReceipt(statusPayload, preByzantiumBlock, want)
	require.ErrorIs(t, err, ErrStateRootMismatch)
}

func TestCheckReceiptTyped(t *testing.T) {
	r := &types.Receipt{
		Type:              types.DynamicFeeTxType,
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 84000,
	}
	txType, payload, err := SplitReceiptEnvelope(marshalReceipt(t, r))
	require.NoError(t, err)
	require.Equal(t, DynamicFeeTxType, txType)

	require.NoError(t, CheckReceipt(payload, postByzantiumBlock, ReceiptPartial{Status: 1, CumulativeGasUsed: 84000}))
}

func TestCheckReceiptMismatches(t *testing.T) {
	r := &types.Receipt{
		Type:              types.LegacyTxType,
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 21000,
	}
	_, payload, err := SplitReceiptEnvelope(marshalReceipt(t, r))
	require.NoError(t, err)

	base := ReceiptPartial{Status: 1, CumulativeGasUsed: 21000}

	status := base
	status.Status = 0
	require.ErrorIs(t, CheckReceipt(payload, postByzantiumBlock, status), ErrStatusMismatch)

	gas := base
	gas.CumulativeGasUsed = 1
	require.ErrorIs(t, CheckReceipt(payload, postByzantiumBlock, gas), ErrGasUsedMismatch)

	bloom := base
	bloom.Bloom[0] = 0xff
	require.ErrorIs(t, CheckReceipt(payload, postByzantiumBlock, bloom), ErrBloomMismatch)
}

func TestSplitReceiptEnvelopeRejectsUnknownType(t *testing.T) {
	_, _, err := SplitReceiptEnvelope([]byte{0x05, 0xc0})
	require.ErrorIs(t, err, ErrUnknownType)

	_, _, err = SplitReceiptEnvelope(nil)
	require.ErrorIs(t, err, ErrEnvelope)
}
