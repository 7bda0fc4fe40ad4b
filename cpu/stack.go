package cpu

const (
	STACK_TOP = 0xff // Stack pointer after reset.
)

// Stack is the hardware stack in page 1, growing downwards.
type Stack struct {
	Pointer byte    // Next free slot.
	Memory  *Memory // Backing memory.
}

// Push writes value to the free slot, then decrements the pointer.
func (s *Stack) Push(value byte) {
	s.Memory[STACK_PAGE+uint16(s.Pointer)] = value
	s.Pointer--
}

// Pull increments the pointer, then reads the slot.
func (s *Stack) Pull() (value byte) {
	s.Pointer++
	value = s.Memory[STACK_PAGE+uint16(s.Pointer)]
	return
}

// Depth returns the number of bytes pushed since reset, modulo 256.
func (s *Stack) Depth() int {
	return int(STACK_TOP - s.Pointer)
}

func (s *Stack) Reset() {
	s.Pointer = STACK_TOP
}
