package types

import "fmt"

type (
	// Address is the address of a byte in the simulated memory.
	Address uint64

	// Length is the number of bytes in a memory block.
	Length uint64
)

// MemoryBlock is a contiguous region of the simulated memory.
type MemoryBlock struct {
	BaseAddress Address
	Length      Length
}

// End returns the address right after the last byte of the block.
func (b MemoryBlock) End() Address {
	return b.BaseAddress + Address(b.Length)
}

// String returns the textual representation of the block.
func (b MemoryBlock) String() string {
	return fmt.Sprintf("(%d , %d)", b.BaseAddress, b.Length)
}
