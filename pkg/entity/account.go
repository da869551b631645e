// Package entity asserts that RLP-encoded trie values decode to the
// typed structures a caller claims they hold. The inclusion of the raw
// bytes is proven separately by pkg/mpt; this package closes the gap
// between "these bytes are in the trie" and "the trie stores this
// account / transaction / receipt".
package entity

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/yourorg/mptproof/pkg/rlp"
)

// Account mirrors the four-field state-trie account body.
type Account struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageHash common.Hash
	CodeHash    common.Hash
}

const accountFieldCount = 4

// CheckAccount decodes encoded as the fixed account layout
// [nonce, balance, storage_hash, code_hash] and asserts field-by-field
// equality with want. The first mismatched field aborts the check.
func CheckAccount(encoded []byte, want Account) error {
	w := rlp.NewWindow(encoded)
	fields, err := rlp.DecodeListSmall(w, accountFieldCount)
	if err != nil {
		return err
	}
	if len(fields) != accountFieldCount {
		return fmt.Errorf("%w: account has %d fields", ErrFieldCount, len(fields))
	}

	nonce, err := fieldUint64(w, fields[0])
	if err != nil {
		return err
	}
	if nonce != want.Nonce {
		return fmt.Errorf("%w: decoded %d, want %d", ErrNonceMismatch, nonce, want.Nonce)
	}

	balance, err := fieldUint256(w, fields[1])
	if err != nil {
		return err
	}
	wantBalance := want.Balance
	if wantBalance == nil {
		wantBalance = uint256.NewInt(0)
	}
	if !balance.Eq(wantBalance) {
		return fmt.Errorf("%w: decoded %s, want %s", ErrBalanceMismatch, balance, wantBalance)
	}

	if err := fieldHashEqual(w, fields[2], want.StorageHash, ErrStorageHashMismatch); err != nil {
		return err
	}
	return fieldHashEqual(w, fields[3], want.CodeHash, ErrCodeHashMismatch)
}

func fieldHashEqual(w rlp.Window, f rlp.Fragment, want common.Hash, mismatch error) error {
	fw, err := w.Frag(f)
	if err != nil {
		return err
	}
	if fw.Len() != common.HashLength || !bytes.Equal(fw.Bytes(), want.Bytes()) {
		return fmt.Errorf("%w: decoded %x, want %x", mismatch, fw.Bytes(), want)
	}
	return nil
}

// fieldUint64 reads a big-endian integer field of at most 8 bytes.
func fieldUint64(w rlp.Window, f rlp.Fragment) (uint64, error) {
	fw, err := w.Frag(f)
	if err != nil {
		return 0, err
	}
	if fw.Len() > 8 {
		return 0, fmt.Errorf("%w: %d bytes for uint64", ErrIntegerWidth, fw.Len())
	}
	var out uint64
	for _, b := range fw.Bytes() {
		out = out<<8 | uint64(b)
	}
	return out, nil
}

// fieldUint256 reads a big-endian integer field of at most 32 bytes.
func fieldUint256(w rlp.Window, f rlp.Fragment) (*uint256.Int, error) {
	fw, err := w.Frag(f)
	if err != nil {
		return nil, err
	}
	if fw.Len() > 32 {
		return nil, fmt.Errorf("%w: %d bytes for uint256", ErrIntegerWidth, fw.Len())
	}
	return new(uint256.Int).SetBytes(fw.Bytes()), nil
}
