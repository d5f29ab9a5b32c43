package alloc

import (
	"context"
	"testing"

	"github.com/outofforest/logger"
	"github.com/outofforest/memsim/types"
)

// NewSpaceInTest creates memory space for unit tests.
func NewSpaceInTest(t *testing.T, totalSize types.Length) *Space {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig)))
	t.Cleanup(cancel)

	s, err := NewSpace(ctx, Config{TotalSize: totalSize})
	if err != nil {
		t.Fatal(err)
	}
	return s
}
