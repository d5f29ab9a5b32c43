package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/outofforest/memsim/alloc"
	"github.com/outofforest/memsim/types"
)

type opType string

const (
	opMalloc opType = "malloc"
	opFree   opType = "free"
	opDefrag opType = "defrag"
)

type op struct {
	Type     opType
	Argument uint64
}

// Execute runs operation against the memory space.
func (o op) Execute(space *alloc.Space) error {
	switch o.Type {
	case opMalloc:
		_, err := space.Malloc(types.Length(o.Argument))
		return err
	case opFree:
		return space.Free(types.Address(o.Argument))
	case opDefrag:
		space.Defrag()
		return nil
	default:
		return errors.Errorf("unknown operation %q", o.Type)
	}
}

func parseOp(s string) (op, error) {
	name, arg, hasArg := strings.Cut(s, ":")
	o := op{Type: opType(name)}

	switch o.Type {
	case opDefrag:
		if hasArg {
			return op{}, errors.Errorf("operation %q does not take an argument", name)
		}
		return o, nil
	case opMalloc, opFree:
		if !hasArg {
			return op{}, errors.Errorf("operation %q requires an argument", name)
		}
		var err error
		o.Argument, err = strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return op{}, errors.Wrapf(err, "invalid argument of operation %q", name)
		}
		return o, nil
	default:
		return op{}, errors.Errorf("unknown operation %q", name)
	}
}
