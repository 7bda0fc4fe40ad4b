package cpu

// RefMode is the encoding of a pending label reference.
type RefMode int

const (
	REF_RELATIVE = RefMode(0) // One byte signed offset.
	REF_ABSOLUTE = RefMode(1) // Two byte little-endian address.
)

// Size of the placeholder a reference occupies.
func (mode RefMode) Size() int {
	if mode == REF_ABSOLUTE {
		return 2
	}
	return 1
}

// Reference is a use of a label that is patched once all labels are known.
type Reference struct {
	Pos    int     // Offset of the placeholder in the code.
	Mode   RefMode // Placeholder encoding.
	LineNo int     // Source line of the use.
	Label  string  // Label name.
}

// Link patches every reference in code, in the order they were recorded.
//
// Labels map to offsets within code; absolute references are relocated
// to origin. The first unresolvable reference aborts the link.
func Link(code []byte, labels map[string]int, refs []Reference, origin uint16) (err error) {
	for _, ref := range refs {
		err = ref.resolve(code, labels, origin)
		if err != nil {
			err = &ErrSyntax{LineNo: ref.LineNo, Err: err}
			return
		}
	}

	return
}

// resolve patches a single reference.
func (ref *Reference) resolve(code []byte, labels map[string]int, origin uint16) (err error) {
	offset, ok := labels[ref.Label]
	if !ok {
		err = ErrLabelMissing(ref.Label)
		return
	}

	if ref.Pos < 0 || ref.Pos+ref.Mode.Size() > len(code) {
		err = ErrReferenceBounds
		return
	}

	switch ref.Mode {
	case REF_RELATIVE:
		rel := offset - ref.Pos - 1
		if rel < -128 || rel > 127 {
			err = ErrLabelTooFar(ref.Label)
			return
		}
		code[ref.Pos] = byte(int8(rel))
	case REF_ABSOLUTE:
		addr := int(origin) + offset
		if addr > 0xffff {
			err = ErrLabelTooFar(ref.Label)
			return
		}
		code[ref.Pos] = byte(addr)
		code[ref.Pos+1] = byte(addr >> 8)
	default:
		err = ErrReferenceMode
	}

	return
}
