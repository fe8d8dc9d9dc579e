package nbt

// Plain converts a tag tree into plain Go values suitable for encoding/json or yaml.
//
// Compounds become map[string]any, lists become []any, arrays become slices of their
// element type and scalars become their underlying Go type. End becomes nil.
func Plain(v Value) any {
	switch v := v.(type) {
	case Byte:
		return int8(v)
	case Short:
		return int16(v)
	case Int:
		return int32(v)
	case Long:
		return int64(v)
	case Float:
		return float32(v)
	case Double:
		return float64(v)
	case String:
		return string(v)
	case ByteArray:
		return []int8(v)
	case IntArray:
		return []int32(v)
	case LongArray:
		return []int64(v)
	case *List:
		if v == nil {
			return nil
		}
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = Plain(item)
		}

		return out
	case *Compound:
		if v == nil {
			return nil
		}
		out := make(map[string]any, v.Len())
		for name, item := range v.All() {
			out[name] = Plain(item)
		}

		return out
	default:
		return nil
	}
}
