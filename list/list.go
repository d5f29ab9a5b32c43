package list

import (
	"iter"
	"strings"

	"github.com/pkg/errors"

	"github.com/outofforest/mass"
	"github.com/outofforest/memsim/types"
)

// massCapacity is the number of nodes preallocated at once by the node arena.
const massCapacity = 128

var (
	// ErrInvalidIndex is returned if index is out of the allowed range.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrNotFound is returned if node or block to remove does not exist in the list.
	ErrNotFound = errors.New("not found")

	// ErrNoSuchElement is returned by the iterator when there are no more blocks.
	ErrNoSuchElement = errors.New("no such element")
)

// Config stores list configuration.
type Config struct {
	// MassNode is the arena nodes are allocated from. Lists may share it.
	// If nil, list creates its own.
	MassNode *mass.Mass[Node]
}

// New creates new list.
func New(config Config) *List {
	if config.MassNode == nil {
		config.MassNode = mass.New[Node](massCapacity)
	}
	return &List{
		config: config,
	}
}

// List is the singly-linked list of memory blocks.
type List struct {
	config Config

	head *Node
	tail *Node
	size int
}

// First returns the first node of the list or nil if list is empty.
func (l *List) First() *Node {
	return l.head
}

// Last returns the last node of the list or nil if list is empty.
func (l *List) Last() *Node {
	return l.tail
}

// Size returns the number of blocks in the list.
func (l *List) Size() int {
	return l.size
}

// Node returns the node at the given index.
func (l *List) Node(index int) (*Node, error) {
	if index < 0 || index >= l.size {
		return nil, errors.Wrapf(ErrInvalidIndex, "index %d out of range [0, %d)", index, l.size)
	}
	return l.node(index), nil
}

// Add inserts block so it becomes the element at the given index.
// Index equal to the size of the list appends the block.
func (l *List) Add(index int, block types.MemoryBlock) error {
	if index < 0 || index > l.size {
		return errors.Wrapf(ErrInvalidIndex, "index %d out of range [0, %d]", index, l.size)
	}

	switch index {
	case 0:
		l.AddFirst(block)
	case l.size:
		l.AddLast(block)
	default:
		prev := l.node(index - 1)
		n := l.newNode(block)
		n.next = prev.next
		prev.next = n
		l.size++
	}

	return nil
}

// AddFirst inserts block at the beginning of the list.
func (l *List) AddFirst(block types.MemoryBlock) {
	n := l.newNode(block)
	n.next = l.head
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// AddLast appends block to the end of the list.
func (l *List) AddLast(block types.MemoryBlock) {
	n := l.newNode(block)
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// Block returns the block stored at the given index.
func (l *List) Block(index int) (types.MemoryBlock, error) {
	n, err := l.Node(index)
	if err != nil {
		return types.MemoryBlock{}, err
	}
	return n.block, nil
}

// IndexOf returns the index of the first block equal to the given one, or -1 if there is no such block.
func (l *List) IndexOf(block types.MemoryBlock) int {
	it := l.Iterator()
	for index := 0; it.HasNext(); index++ {
		// Error is impossible here because HasNext returned true.
		b, _ := it.Next()
		if b == block {
			return index
		}
	}
	return -1
}

// Remove unlinks the node from the list.
// Node is matched by identity, so equal blocks stored in other nodes are not affected.
func (l *List) Remove(node *Node) error {
	if node == nil {
		return errors.Wrap(ErrNotFound, "nil node")
	}

	var prev *Node
	for n := l.head; n != nil; prev, n = n, n.next {
		if n == node {
			l.unlink(prev, n)
			return nil
		}
	}

	return errors.Wrapf(ErrNotFound, "node with block %s is not in the list", node.block)
}

// RemoveAt removes the node at the given index.
func (l *List) RemoveAt(index int) error {
	n, err := l.Node(index)
	if err != nil {
		return err
	}
	return l.Remove(n)
}

// RemoveBlock removes the first node storing block equal to the given one.
func (l *List) RemoveBlock(block types.MemoryBlock) error {
	index := l.IndexOf(block)
	if index < 0 {
		return errors.Wrapf(ErrNotFound, "block %s is not in the list", block)
	}
	return l.RemoveAt(index)
}

// Clear removes all the blocks from the list.
func (l *List) Clear() {
	l.head = nil
	l.tail = nil
	l.size = 0
}

// Iterator returns new iterator positioned at the first block.
func (l *List) Iterator() *Iterator {
	return &Iterator{current: l.head}
}

// Items iterates over blocks in the list.
func (l *List) Items() iter.Seq[types.MemoryBlock] {
	return func(yield func(types.MemoryBlock) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.block) {
				return
			}
		}
	}
}

// String returns blocks separated by spaces.
func (l *List) String() string {
	var sb strings.Builder
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.block.String())
	}
	return sb.String()
}

func (l *List) node(index int) *Node {
	n := l.head
	for range index {
		n = n.next
	}
	return n
}

func (l *List) newNode(block types.MemoryBlock) *Node {
	n := l.config.MassNode.New()
	n.block = block
	n.next = nil
	return n
}

func (l *List) unlink(prev, n *Node) {
	if prev == nil {
		l.head = n.next
	} else {
		prev.next = n.next
	}
	if n == l.tail {
		l.tail = prev
	}
	n.next = nil
	l.size--
}
