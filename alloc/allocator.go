package alloc

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/mass"
	"github.com/outofforest/memsim/list"
	"github.com/outofforest/memsim/types"
)

// massCapacity is the number of list nodes preallocated at once for both lists of the space.
const massCapacity = 256

var (
	// ErrOutOfMemory is returned if there is no free block large enough to serve the request.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrNotAllocated is returned if freed address is not the base address of any allocated block.
	ErrNotAllocated = errors.New("address not allocated")

	// ErrInvalidLength is returned if requested length is zero.
	ErrInvalidLength = errors.New("invalid length")
)

// Config stores configuration of the memory space.
type Config struct {
	TotalSize types.Length
}

// NewSpace creates memory space with all the memory free.
func NewSpace(ctx context.Context, config Config) (*Space, error) {
	if config.TotalSize == 0 {
		return nil, errors.New("total size must be greater than zero")
	}

	massNode := mass.New[list.Node](massCapacity)
	s := &Space{
		config:        config,
		log:           logger.Get(ctx).With(zap.Uint64("totalSize", uint64(config.TotalSize))),
		freeList:      list.New(list.Config{MassNode: massNode}),
		allocatedList: list.New(list.Config{MassNode: massNode}),
	}
	s.freeList.AddLast(types.MemoryBlock{
		BaseAddress: 0,
		Length:      config.TotalSize,
	})

	return s, nil
}

// Space simulates memory managed by free and allocated block lists.
type Space struct {
	config Config
	log    *zap.Logger

	freeList      *list.List
	allocatedList *list.List
}

// Malloc allocates block of the requested length using the first free block large enough.
func (s *Space) Malloc(length types.Length) (types.Address, error) {
	if length == 0 {
		return 0, errors.WithStack(ErrInvalidLength)
	}

	index, free, found := findBlock(s.freeList, func(b types.MemoryBlock) bool {
		return b.Length >= length
	})
	if !found {
		return 0, errors.Wrapf(ErrOutOfMemory, "requested length: %d", length)
	}

	if err := s.freeList.RemoveAt(index); err != nil {
		return 0, err
	}
	if free.Length > length {
		if err := s.freeList.Add(index, types.MemoryBlock{
			BaseAddress: free.BaseAddress + types.Address(length),
			Length:      free.Length - length,
		}); err != nil {
			return 0, err
		}
	}

	s.allocatedList.AddLast(types.MemoryBlock{
		BaseAddress: free.BaseAddress,
		Length:      length,
	})

	s.log.Debug("Block allocated",
		zap.Uint64("address", uint64(free.BaseAddress)),
		zap.Uint64("length", uint64(length)))

	return free.BaseAddress, nil
}

// Free returns allocated block starting at the address to the free list.
func (s *Space) Free(address types.Address) error {
	index, allocated, found := findBlock(s.allocatedList, func(b types.MemoryBlock) bool {
		return b.BaseAddress == address
	})
	if !found {
		return errors.Wrapf(ErrNotAllocated, "address: %d", address)
	}

	if err := s.allocatedList.RemoveAt(index); err != nil {
		return err
	}
	s.freeList.AddLast(allocated)

	s.log.Debug("Block freed",
		zap.Uint64("address", uint64(allocated.BaseAddress)),
		zap.Uint64("length", uint64(allocated.Length)))

	return nil
}

// Defrag merges free blocks which are adjacent in the address space.
func (s *Space) Defrag() {
	blocks := make([]types.MemoryBlock, 0, s.freeList.Size())
	for b := range s.freeList.Items() {
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].BaseAddress < blocks[j].BaseAddress
	})

	merged := make([]types.MemoryBlock, 0, len(blocks))
	for _, b := range blocks {
		if n := len(merged); n > 0 && merged[n-1].End() == b.BaseAddress {
			merged[n-1].Length += b.Length
			continue
		}
		merged = append(merged, b)
	}

	s.freeList.Clear()
	for _, b := range merged {
		s.freeList.AddLast(b)
	}

	s.log.Debug("Free blocks defragmented",
		zap.Int("blocksBefore", len(blocks)),
		zap.Int("blocksAfter", s.freeList.Size()))
}

// FreeBlocks returns the list of free blocks.
func (s *Space) FreeBlocks() *list.List {
	return s.freeList
}

// AllocatedBlocks returns the list of allocated blocks.
func (s *Space) AllocatedBlocks() *list.List {
	return s.allocatedList
}

// FreeSize returns the total length of free blocks.
func (s *Space) FreeSize() types.Length {
	return sumLength(s.freeList)
}

// AllocatedSize returns the total length of allocated blocks.
func (s *Space) AllocatedSize() types.Length {
	return sumLength(s.allocatedList)
}

// String returns free blocks in the first line and allocated blocks in the second one.
func (s *Space) String() string {
	var sb strings.Builder
	sb.WriteString(s.freeList.String())
	sb.WriteByte('\n')
	sb.WriteString(s.allocatedList.String())
	return sb.String()
}

func findBlock(l *list.List, match func(b types.MemoryBlock) bool) (int, types.MemoryBlock, bool) {
	var index int
	for b := range l.Items() {
		if match(b) {
			return index, b, true
		}
		index++
	}
	return -1, types.MemoryBlock{}, false
}

func sumLength(l *list.List) types.Length {
	var blocks []types.MemoryBlock
	for b := range l.Items() {
		blocks = append(blocks, b)
	}
	return lo.SumBy(blocks, func(b types.MemoryBlock) types.Length {
		return b.Length
	})
}
