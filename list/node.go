package list

import "github.com/outofforest/memsim/types"

// Node is a link of the list holding one memory block.
type Node struct {
	block types.MemoryBlock
	next  *Node
}

// Block returns the memory block stored in the node.
func (n *Node) Block() types.MemoryBlock {
	return n.block
}
