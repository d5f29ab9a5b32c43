package test

import (
	"sort"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"

	"github.com/outofforest/memsim/list"
	"github.com/outofforest/memsim/types"
)

// NewList creates list containing provided blocks.
func NewList(blocks ...types.MemoryBlock) *list.List {
	l := list.New(list.Config{})
	for _, b := range blocks {
		l.AddLast(b)
	}
	return l
}

// CollectListItems collects blocks available in list.
func CollectListItems(l *list.List) []types.MemoryBlock {
	items := []types.MemoryBlock{}
	for item := range l.Items() {
		items = append(items, item)
	}
	return items
}

// Sorted returns sorted copy of the slice.
func Sorted[T constraints.Ordered](items []T) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	return sorted
}

// RequireConsistent verifies that head, tail and size of the list match its chain.
func RequireConsistent(requireT *require.Assertions, l *list.List) {
	items := CollectListItems(l)
	requireT.Len(items, l.Size())

	if l.Size() == 0 {
		requireT.Nil(l.First())
		requireT.Nil(l.Last())
		return
	}

	requireT.NotNil(l.First())
	requireT.NotNil(l.Last())
	requireT.Equal(items[0], l.First().Block())
	requireT.Equal(items[len(items)-1], l.Last().Block())

	last, err := l.Node(l.Size() - 1)
	requireT.NoError(err)
	requireT.Same(l.Last(), last)
	if l.Size() == 1 {
		requireT.Same(l.First(), l.Last())
	}
}
