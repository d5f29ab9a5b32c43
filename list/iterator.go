package list

import (
	"github.com/pkg/errors"

	"github.com/outofforest/memsim/types"
)

// Iterator is a single-pass cursor over the blocks of the list.
// It must not be used after the list is modified.
type Iterator struct {
	current *Node
}

// HasNext returns true if there are blocks left to consume.
func (it *Iterator) HasNext() bool {
	return it.current != nil
}

// Next returns the current block and moves to the next one.
func (it *Iterator) Next() (types.MemoryBlock, error) {
	if it.current == nil {
		return types.MemoryBlock{}, errors.WithStack(ErrNoSuchElement)
	}

	block := it.current.block
	it.current = it.current.next
	return block, nil
}
