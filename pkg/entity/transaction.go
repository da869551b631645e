package entity

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/yourorg/mptproof/pkg/rlp"
)

// TxType is the closed set of transaction encodings this package
// understands. Values match the EIP-2718 type bytes.
type TxType uint8

const (
	LegacyTxType     TxType = types.LegacyTxType
	AccessListTxType TxType = types.AccessListTxType
	DynamicFeeTxType TxType = types.DynamicFeeTxType
	BlobTxType       TxType = types.BlobTxType
	SetCodeTxType    TxType = types.SetCodeTxType
)

func (t TxType) String() string {
	switch t {
	case LegacyTxType:
		return "legacy"
	case AccessListTxType:
		return "eip2930"
	case DynamicFeeTxType:
		return "eip1559"
	case BlobTxType:
		return "eip4844"
	case SetCodeTxType:
		return "eip7702"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// txLayout gives the positions of the compared fields inside a
// transaction's RLP payload list. sig indexes V; R and S follow it.
type txLayout struct {
	fields int
	nonce  int
	gas    int
	to     int
	value  int
	data   int
	sig    int
}

// txLayouts is the immutable per-type field-position table.
var txLayouts = [...]txLayout{
	LegacyTxType:     {fields: 9, nonce: 0, gas: 2, to: 3, value: 4, data: 5, sig: 6},
	AccessListTxType: {fields: 11, nonce: 1, gas: 3, to: 4, value: 5, data: 6, sig: 8},
	DynamicFeeTxType: {fields: 12, nonce: 1, gas: 4, to: 5, value: 6, data: 7, sig: 9},
	BlobTxType:       {fields: 14, nonce: 1, gas: 4, to: 5, value: 6, data: 7, sig: 11},
	SetCodeTxType:    {fields: 13, nonce: 1, gas: 4, to: 5, value: 6, data: 7, sig: 10},
}

// TransactionPartial holds the transaction fields a caller wants
// asserted. The remaining positions (fee fields, access lists) are
// shape-checked by the list decoder but not compared.
type TransactionPartial struct {
	Nonce    uint64
	GasLimit uint64
	To       *common.Address // nil means contract creation
	Value    *uint256.Int
	Data     []byte
	V, R, S  *uint256.Int
}

// SplitTxEnvelope separates a stored transaction into its type and RLP
// payload. Typed transactions carry a leading EIP-2718 type byte.
// Legacy transactions are recognised by the list marker and carry one
// trailing pad byte instead, which must be exactly zero.
func SplitTxEnvelope(env []byte) (TxType, []byte, error) {
	if len(env) == 0 {
		return 0, nil, fmt.Errorf("%w: empty", ErrEnvelope)
	}
	b0 := env[0]

	if b0 >= 0xc0 {
		// Legacy list with the trailing zero pad.
		if len(env) < 2 {
			return 0, nil, fmt.Errorf("%w: legacy envelope too short", ErrEnvelope)
		}
		if pad := env[len(env)-1]; pad != 0 {
			return 0, nil, fmt.Errorf("%w: legacy pad byte %#x", ErrEnvelope, pad)
		}
		payload := env[:len(env)-1]
		span, err := rlp.EncodedLen(rlp.NewWindow(payload))
		if err != nil {
			return 0, nil, err
		}
		if span != len(payload) {
			return 0, nil, fmt.Errorf("%w: legacy payload spans %d of %d bytes", ErrEnvelope, span, len(payload))
		}
		return LegacyTxType, payload, nil
	}

	t := TxType(b0)
	switch t {
	case AccessListTxType, DynamicFeeTxType, BlobTxType, SetCodeTxType:
		return t, env[1:], nil
	}
	return 0, nil, fmt.Errorf("%w: type byte %#x", ErrUnknownType, b0)
}

// CheckTransaction decodes payload with the layout of txType and
// asserts positional equality with want for nonce, gas limit, to,
// value, data and the three signature components.
func CheckTransaction(payload []byte, txType TxType, want TransactionPartial) error {
	if int(txType) >= len(txLayouts) {
		return fmt.Errorf("%w: %s", ErrUnknownType, txType)
	}
	layout := txLayouts[txType]

	w := rlp.NewWindow(payload)
	fields, err := rlp.DecodeList(w, layout.fields)
	if err != nil {
		return err
	}
	if len(fields) != layout.fields {
		return fmt.Errorf("%w: %s has %d fields, layout says %d", ErrFieldCount, txType, len(fields), layout.fields)
	}

	nonce, err := fieldUint64(w, fields[layout.nonce])
	if err != nil {
		return err
	}
	if nonce != want.Nonce {
		return fmt.Errorf("%w: decoded %d, want %d", ErrNonceMismatch, nonce, want.Nonce)
	}

	gas, err := fieldUint64(w, fields[layout.gas])
	if err != nil {
		return err
	}
	if gas != want.GasLimit {
		return fmt.Errorf("%w: decoded %d, want %d", ErrGasLimitMismatch, gas, want.GasLimit)
	}

	if err := checkToField(w, fields[layout.to], want.To); err != nil {
		return err
	}

	value, err := fieldUint256(w, fields[layout.value])
	if err != nil {
		return err
	}
	wantValue := want.Value
	if wantValue == nil {
		wantValue = uint256.NewInt(0)
	}
	if !value.Eq(wantValue) {
		return fmt.Errorf("%w: decoded %s, want %s", ErrValueMismatch, value, wantValue)
	}

	dataWin, err := w.Frag(fields[layout.data])
	if err != nil {
		return err
	}
	if !bytes.Equal(dataWin.Bytes(), want.Data) {
		return fmt.Errorf("%w: decoded %d bytes, want %d", ErrDataMismatch, dataWin.Len(), len(want.Data))
	}

	for i, wantSig := range []*uint256.Int{want.V, want.R, want.S} {
		got, err := fieldUint256(w, fields[layout.sig+i])
		if err != nil {
			return err
		}
		if wantSig == nil {
			wantSig = uint256.NewInt(0)
		}
		if !got.Eq(wantSig) {
			return fmt.Errorf("%w: component %d decoded %s, want %s", ErrSignatureMismatch, i, got, wantSig)
		}
	}
	return nil
}

// checkToField compares the to position. Contract creation encodes the
// recipient as an explicit empty string, never as a zero address.
func checkToField(w rlp.Window, f rlp.Fragment, want *common.Address) error {
	fw, err := w.Frag(f)
	if err != nil {
		return err
	}
	if want == nil {
		if f.Kind != rlp.KindString || fw.Len() != 0 {
			return fmt.Errorf("%w: creation needs empty to field, got %d bytes", ErrToMismatch, fw.Len())
		}
		return nil
	}
	if fw.Len() != common.AddressLength || !bytes.Equal(fw.Bytes(), want.Bytes()) {
		return fmt.Errorf("%w: decoded %x, want %x", ErrToMismatch, fw.Bytes(), want)
	}
	return nil
}

// CheckTransactionIndex asserts that keyRLP is the trie key for the
// given transaction or receipt list index. Index zero encodes as the
// empty string (the single byte 0x80); every other index is its
// minimal big-endian RLP.
func CheckTransactionIndex(keyRLP []byte, index uint64) error {
	w := rlp.NewWindow(keyRLP)
	f, err := rlp.DecodeString(w)
	if err != nil {
		return err
	}
	if f.Off+f.Len != len(keyRLP) {
		return fmt.Errorf("%w: trailing bytes after key", rlp.ErrLengthMismatch)
	}
	fw, err := w.Frag(f)
	if err != nil {
		return err
	}

	if fw.Len() == 0 {
		if index != 0 {
			return fmt.Errorf("%w: empty key encodes index 0, want %d", ErrIndexMismatch, index)
		}
		return nil
	}
	decoded, err := fieldUint64(w, f)
	if err != nil {
		return err
	}
	// Reject padded encodings: the canonical key for an index has no
	// leading zero byte.
	if b, _ := fw.At(0); b == 0 {
		return fmt.Errorf("%w: leading zero in key", ErrIndexMismatch)
	}
	if decoded != index {
		return fmt.Errorf("%w: decoded %d, want %d", ErrIndexMismatch, decoded, index)
	}
	return nil
}
