package codec

import (
	"github.com/wippyai/bytestruct/codec/internal/types"
)

type TypeKind = types.Kind

const (
	KindPrimitive = types.KindPrimitive
	KindStruct    = types.KindStruct
	KindArray     = types.KindArray
	KindBitfield  = types.KindBitfield
	KindCustom    = types.KindCustom
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
