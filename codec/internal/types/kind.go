package types

type Kind uint8

const (
	KindPrimitive Kind = iota
	KindStruct
	KindArray
	KindBitfield
	KindCustom
)

var kindNames = [...]string{
	KindPrimitive: "primitive",
	KindStruct:    "struct",
	KindArray:     "array",
	KindBitfield:  "bitfield",
	KindCustom:    "custom",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLeaf reports whether values of this kind are encoded without visiting
// members.
func (k Kind) IsLeaf() bool {
	return k == KindPrimitive || k == KindCustom
}
