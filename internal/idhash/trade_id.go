package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ComputeTradeID computes a deterministic trade id using SHA256.
// Formula: SHA256(account_id|date|pair|direction|entry_time|net_pl|ordinal)
// netPL must be the canonical decimal string of the amount so that "100",
// "100.0" and "100.00" hash identically. ordinal distinguishes otherwise
// identical trades within one import (0 for the first occurrence).
// Returns hex-encoded hash (64 characters).
func ComputeTradeID(
	accountID string,
	date string,
	pair string,
	direction string,
	entryTime string,
	netPL string,
	ordinal int,
) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d",
		accountID,
		date,
		strings.ToUpper(pair),
		direction,
		entryTime,
		netPL,
		ordinal,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
