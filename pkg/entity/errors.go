package entity

import "errors"

// Each mismatch names the field it was detected on, chainstorage-style,
// so callers can tell malformed input from a wrong claim.
var (
	ErrFieldCount  = errors.New("entity: field count does not match layout")
	ErrEnvelope    = errors.New("entity: malformed transaction envelope")
	ErrUnknownType = errors.New("entity: unknown transaction type")

	ErrNonceMismatch       = errors.New("entity: mismatched nonce")
	ErrBalanceMismatch     = errors.New("entity: mismatched balance")
	ErrStorageHashMismatch = errors.New("entity: mismatched storage hash")
	ErrCodeHashMismatch    = errors.New("entity: mismatched code hash")

	ErrGasLimitMismatch  = errors.New("entity: mismatched gas limit")
	ErrToMismatch        = errors.New("entity: mismatched to address")
	ErrValueMismatch     = errors.New("entity: mismatched value")
	ErrDataMismatch      = errors.New("entity: mismatched calldata")
	ErrSignatureMismatch = errors.New("entity: mismatched signature component")

	ErrIndexMismatch = errors.New("entity: mismatched transaction index")

	ErrStatusMismatch    = errors.New("entity: mismatched receipt status")
	ErrStateRootMismatch = errors.New("entity: mismatched receipt state root")
	ErrGasUsedMismatch   = errors.New("entity: mismatched cumulative gas used")
	ErrBloomMismatch     = errors.New("entity: mismatched logs bloom")

	ErrIntegerWidth = errors.New("entity: integer field too wide")
)
