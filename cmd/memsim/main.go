package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/memsim/alloc"
	"github.com/outofforest/memsim/types"
)

func main() {
	var (
		size uint64
		ops  []string
	)

	flags := pflag.NewFlagSet("memsim", pflag.ExitOnError)
	flags.Uint64Var(&size, "size", 1024, "Total size of the simulated memory")
	flags.StringArrayVar(&ops, "op", nil, "Operation to execute: malloc:<length>, free:<address> or defrag")
	// ExitOnError is set, so error is never returned.
	_ = flags.Parse(os.Args[1:])

	ctx := logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig))
	if err := run(ctx, alloc.Config{TotalSize: types.Length(size)}, ops); err != nil {
		logger.Get(ctx).Error("Simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, config alloc.Config, ops []string) error {
	log := logger.Get(ctx)

	space, err := alloc.NewSpace(ctx, config)
	if err != nil {
		return err
	}

	for _, o := range ops {
		op, err := parseOp(o)
		if err != nil {
			return err
		}
		if err := op.Execute(space); err != nil {
			return err
		}

		log.Info("Operation executed",
			zap.String("op", o),
			zap.String("free", space.FreeBlocks().String()),
			zap.String("allocated", space.AllocatedBlocks().String()))
	}

	return nil
}
