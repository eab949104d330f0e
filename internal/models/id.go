package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ID prefixes per entity type.
const (
	PrefixProject  = "prj"
	PrefixInstance = "chk"
	PrefixItem     = "itm"
	PrefixEpic     = "epc"
	PrefixStory    = "sty"
	PrefixTask     = "tsk"
)

// NewID creates a unique ID in prefix-xxxxxxxx format (8-char hex).
func NewID(prefix string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("models: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}
