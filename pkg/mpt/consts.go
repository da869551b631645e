package mpt

// Bounds fixes the capacities of a proof before any verification runs.
// Exceeding a bound is an assembly-time failure, never a verifier
// concern. A branch node of 17 hash slots encodes to at most 532 bytes
// plus header; leaf sizes track the values a given trie stores.
type Bounds struct {
	// MaxDepth bounds the number of interior nodes; the leaf is held
	// separately, so a proof carries at most MaxDepth+1 nodes.
	MaxDepth int
	// MaxNodeLen bounds the encoded size of any interior node.
	MaxNodeLen int
	// MaxLeafLen bounds the encoded size of the terminal node.
	MaxLeafLen int
	// MaxValueLen bounds the RLP-encoded value compared at the leaf.
	MaxValueLen int
}

// Capacities per trie kind, sized for mainnet state shapes.
var (
	AccountBounds = Bounds{MaxDepth: 8, MaxNodeLen: 600, MaxLeafLen: 256, MaxValueLen: 128}
	StorageBounds = Bounds{MaxDepth: 6, MaxNodeLen: 600, MaxLeafLen: 128, MaxValueLen: 56}
	TxBounds      = Bounds{MaxDepth: 6, MaxNodeLen: 600, MaxLeafLen: 2200, MaxValueLen: 2048}
	ReceiptBounds = Bounds{MaxDepth: 6, MaxNodeLen: 600, MaxLeafLen: 2200, MaxValueLen: 2048}
)
