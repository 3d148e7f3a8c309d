package application

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// normalizeAccountID validates a 32-byte destination account identifier and
// returns it in the canonical form records are stored with.
func normalizeAccountID(account string) (string, bool) {
	raw, err := hexutil.Decode(account)
	if err != nil || len(raw) != common.HashLength {
		return "", false
	}
	return common.BytesToHash(raw).Hex(), true
}

// normalizeAddress validates a 20-byte hex address and returns it in the
// canonical form records are stored with.
func normalizeAddress(address string) (string, bool) {
	if !common.IsHexAddress(address) {
		return "", false
	}
	return common.HexToAddress(address).Hex(), true
}
