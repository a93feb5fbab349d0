package permtree

import "strings"

// Reserved grammar keywords. Matching is case-insensitive; these constants
// are the canonical upper-case spellings used internally and in error
// messages once a key has been recognized as reserved.
const (
	KeyNoBypass = "NO_BYPASS"
	KeyAnd      = "AND"
	KeyNand     = "NAND"
	KeyOr       = "OR"
	KeyNor      = "NOR"
	KeyXor      = "XOR"
	KeyNot      = "NOT"
	KeyTrue     = "TRUE"
	KeyFalse    = "FALSE"

	// legacyNoBypass is the lower-case spelling accepted only at the top
	// level of the root map.
	legacyNoBypass = "no_bypass"
)

// reservedKeys is the full reserved-keyword set, canonicalized to upper
// case, shared by the registry (I2) and the evaluator's grammar dispatch.
var reservedKeys = map[string]bool{
	KeyNoBypass: true,
	KeyAnd:      true,
	KeyNand:     true,
	KeyOr:       true,
	KeyNor:      true,
	KeyXor:      true,
	KeyNot:      true,
	KeyTrue:     true,
	KeyFalse:    true,
}

// isReservedKey reports whether name, compared case-insensitively, is one
// of the grammar's reserved keywords.
func isReservedKey(name string) bool {
	return reservedKeys[strings.ToUpper(name)]
}

// gateKeys is the subset of reserved keys that denote a logic gate rather
// than NO_BYPASS or a boolean literal.
var gateKeys = map[string]bool{
	KeyAnd:  true,
	KeyNand: true,
	KeyOr:   true,
	KeyNor:  true,
	KeyXor:  true,
	KeyNot:  true,
}

func isGateKey(upper string) bool {
	return gateKeys[upper]
}
