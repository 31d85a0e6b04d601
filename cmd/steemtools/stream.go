package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anyswap/steem-client/cmd/utils"
	"github.com/anyswap/steem-client/log"
	"github.com/anyswap/steem-client/steem"
	"github.com/anyswap/steem-client/terminal"
	"github.com/urfave/cli/v2"
)

var (
	fromFlag = &cli.Uint64Flag{
		Name:  "from",
		Usage: "first block number, 0 means the current block",
	}
	toFlag = &cli.Uint64Flag{
		Name:  "to",
		Usage: "last block number, 0 streams forever",
	}
	modeFlag = &cli.StringFlag{
		Name:  "mode",
		Usage: "irreversible or latest, overrides config",
	}
	virtualFlag = &cli.BoolFlag{
		Name:  "virtual",
		Usage: "only virtual operations",
	}
	checkpointFlag = &cli.StringFlag{
		Name:  "checkpoint",
		Usage: "checkpoint name, resume from and save to the config checkpoint db",
	}

	streamCommand = &cli.Command{
		Name:  "stream",
		Usage: "stream blocks or operations",
		Subcommands: []*cli.Command{
			{
				Action: streamBlocksAction,
				Name:   "blocks",
				Usage:  "print blocks",
				Flags:  streamFlags,
			},
			{
				Action: streamOperationsAction,
				Name:   "ops",
				Usage:  "print operations",
				Flags:  append(streamFlags, virtualFlag),
			},
		},
	}

	streamFlags = []cli.Flag{fromFlag, toFlag, modeFlag, checkpointFlag}
)

type streamContext struct {
	ctx   context.Context
	chain *steem.Blockchain
	opts  steem.StreamOptions
	close func()
}

func newStreamContext(ctx *cli.Context) (*streamContext, error) {
	config := utils.LoadConfig(ctx)
	modeName := config.Stream.Mode
	if ctx.IsSet(modeFlag.Name) {
		modeName = ctx.String(modeFlag.Name)
	}
	mode, err := steem.ParseBlockMode(modeName)
	if err != nil {
		return nil, err
	}
	from, to := ctx.Uint64(fromFlag.Name), ctx.Uint64(toFlag.Name)
	if from > uint64(^uint32(0)) || to > uint64(^uint32(0)) {
		return nil, errors.New("block number out of range")
	}
	opts := steem.StreamOptions{
		From:        uint32(from),
		To:          uint32(to),
		Mode:        mode,
		OnlyVirtual: ctx.Bool(virtualFlag.Name),
	}

	client := steem.NewClient(config)
	closers := []func(){client.Close}
	if name := ctx.String(checkpointFlag.Name); name != "" {
		if config.Stream.CheckpointDB == "" {
			client.Close()
			return nil, fmt.Errorf("--%v needs 'Stream.CheckpointDB' in config", checkpointFlag.Name)
		}
		checkpoint, err := steem.OpenLevelDBCheckpoint(config.Stream.CheckpointDB)
		if err != nil {
			client.Close()
			return nil, err
		}
		opts.Checkpoint = checkpoint
		opts.Name = name
		closers = append(closers, func() { _ = checkpoint.Close() })
	}

	sctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return &streamContext{
		ctx:   sctx,
		chain: client.Blockchain(),
		opts:  opts,
		close: func() {
			cancel()
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

func streamBlocksAction(ctx *cli.Context) error {
	s, err := newStreamContext(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	log.Info("stream blocks", "from", s.opts.From, "to", s.opts.To, "mode", s.opts.Mode, "checkpoint", s.opts.Name)
	blocks, errc := s.chain.GetBlocks(s.ctx, s.opts)
	for block := range blocks {
		terminal.Println(block, terminal.Default)
	}
	return <-errc
}

func streamOperationsAction(ctx *cli.Context) error {
	s, err := newStreamContext(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	log.Info("stream operations", "from", s.opts.From, "to", s.opts.To, "mode", s.opts.Mode, "checkpoint", s.opts.Name, "virtual", s.opts.OnlyVirtual)
	ops, errc := s.chain.GetOperations(s.ctx, s.opts)
	for op := range ops {
		terminal.Println(op, terminal.ShowBlockNum|terminal.ShowTransactionID)
	}
	return <-errc
}
