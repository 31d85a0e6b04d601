package steem

import (
	"context"
	"fmt"
	"time"

	"github.com/anyswap/steem-client/log"
	"github.com/anyswap/steem-client/params"
	"github.com/anyswap/steem-client/types"
)

// BlockMode selects which head the stream follows
type BlockMode int

// block modes
const (
	Irreversible BlockMode = iota // last irreversible block
	Latest                        // head block, may be reverted
)

// String returns mode name
func (m BlockMode) String() string {
	if m == Latest {
		return params.StreamModeLatest
	}
	return params.StreamModeIrreversible
}

// ParseBlockMode parses mode name
func ParseBlockMode(s string) (BlockMode, error) {
	switch s {
	case params.StreamModeIrreversible, "":
		return Irreversible, nil
	case params.StreamModeLatest:
		return Latest, nil
	default:
		return Irreversible, fmt.Errorf("unknown block mode %q", s)
	}
}

// StreamOptions block stream options
type StreamOptions struct {
	From uint32 // first block, 0 means the current block
	To   uint32 // last block inclusive, 0 streams forever
	Mode BlockMode

	// resume from Checkpoint under Name, saved after each block is delivered
	Checkpoint Checkpoint
	Name       string

	OnlyVirtual bool // GetOperations only
}

// Blockchain block and operation streams of a client
type Blockchain struct {
	client       *Client
	pollInterval time.Duration
}

// Blockchain returns block stream helpers
func (c *Client) Blockchain() *Blockchain {
	return &Blockchain{
		client:       c,
		pollInterval: c.opts.PollInterval,
	}
}

// GetCurrentBlockNum returns the last irreversible or head block number
func (b *Blockchain) GetCurrentBlockNum(ctx context.Context, mode BlockMode) (uint32, error) {
	props, err := b.client.GetDynamicGlobalProperties(ctx)
	if err != nil {
		return 0, err
	}
	if mode == Latest {
		return props.HeadBlockNumber, nil
	}
	return props.LastIrreversibleBlockNum, nil
}

// GetBlockNumbers streams block numbers. The error channel receives at most
// one error and is closed after the number channel.
func (b *Blockchain) GetBlockNumbers(ctx context.Context, opts StreamOptions) (<-chan uint32, <-chan error) {
	nums := make(chan uint32)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(nums)
		b.report(ctx, errc, b.walk(ctx, opts, func(num uint32) error {
			select {
			case nums <- num:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}))
	}()
	return nums, errc
}

// GetBlocks streams blocks
func (b *Blockchain) GetBlocks(ctx context.Context, opts StreamOptions) (<-chan *types.SignedBlock, <-chan error) {
	blocks := make(chan *types.SignedBlock)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(blocks)
		b.report(ctx, errc, b.walk(ctx, opts, func(num uint32) error {
			block, err := b.client.GetBlock(ctx, num)
			if err != nil {
				return err
			}
			select {
			case blocks <- block:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}))
	}()
	return blocks, errc
}

// GetOperations streams operations of each block, including virtual ones
func (b *Blockchain) GetOperations(ctx context.Context, opts StreamOptions) (<-chan *types.AppliedOperation, <-chan error) {
	ops := make(chan *types.AppliedOperation)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(ops)
		b.report(ctx, errc, b.walk(ctx, opts, func(num uint32) error {
			applied, err := b.client.GetOpsInBlock(ctx, num, opts.OnlyVirtual)
			if err != nil {
				return err
			}
			for _, op := range applied {
				select {
				case ops <- op:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		}))
	}()
	return ops, errc
}

// report drops errors caused by the caller cancelling ctx
func (b *Blockchain) report(ctx context.Context, errc chan<- error, err error) {
	if err == nil || ctx.Err() != nil {
		return
	}
	log.Warn("block stream stopped", "err", err)
	errc <- err
}

// walk calls handle for each block number in order, sleeping when caught up
func (b *Blockchain) walk(ctx context.Context, opts StreamOptions, handle func(num uint32) error) error {
	current, err := b.GetCurrentBlockNum(ctx, opts.Mode)
	if err != nil {
		return err
	}
	next, err := b.startBlock(opts, current)
	if err != nil {
		return err
	}
	if opts.To != 0 && next > opts.To {
		return nil
	}
	log.Debug("start block stream", "from", next, "to", opts.To, "current", current, "mode", opts.Mode)
	for {
		for next <= current {
			if err = handle(next); err != nil {
				return err
			}
			if opts.Checkpoint != nil {
				if err = opts.Checkpoint.Save(opts.Name, next); err != nil {
					return err
				}
			}
			if opts.To != 0 && next >= opts.To {
				return nil
			}
			next++
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.pollInterval):
		}
		if current, err = b.GetCurrentBlockNum(ctx, opts.Mode); err != nil {
			return err
		}
	}
}

func (b *Blockchain) startBlock(opts StreamOptions, current uint32) (uint32, error) {
	if opts.To != 0 && opts.From > opts.To {
		return 0, fmt.Errorf("%w: from %v is larger than to %v", ErrInvalidBlockRange, opts.From, opts.To)
	}
	if opts.Checkpoint != nil {
		saved, exist, err := opts.Checkpoint.Load(opts.Name)
		if err != nil {
			return 0, err
		}
		if exist && saved >= opts.From {
			log.Info("resume block stream from checkpoint", "name", opts.Name, "saved", saved)
			return saved + 1, nil
		}
	}
	if opts.From == 0 {
		return current, nil
	}
	if opts.From > current {
		return 0, fmt.Errorf("%w: from %v is larger than current block %v", ErrInvalidBlockRange, opts.From, current)
	}
	return opts.From, nil
}
