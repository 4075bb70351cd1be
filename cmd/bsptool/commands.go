package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/spooky-bsp/internal/config"
	"github.com/Faultbox/spooky-bsp/internal/logger"
	"github.com/Faultbox/spooky-bsp/internal/scan"
	"github.com/Faultbox/spooky-bsp/pkg/bsp"
)

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: bsptool info <file.bsp>")
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := bsp.Decode(bytes.NewReader(data), bsp.WithLogger(logger.Log))
	if err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Size:       %s", humanize.Bytes(uint64(len(data))))
	if doc.Compressed {
		fmt.Printf(" (gzip, %s decompressed)", humanize.Bytes(uint64(doc.Size)))
	}
	fmt.Println()
	fmt.Printf("Digest:     %016x\n", xxhash.Sum64(data))
	fmt.Printf("Chunks:     %s\n", humanize.Comma(int64(doc.Chunks())))
	fmt.Printf("Textures:   %d\n", len(doc.Textures))
	fmt.Printf("Materials:  %d\n", len(doc.Materials))
	fmt.Printf("Vertices:   %s\n", humanize.Comma(int64(doc.TotalVertices())))
	fmt.Printf("Triangles:  %s\n", humanize.Comma(int64(doc.TotalTriangles())))

	if w := doc.World; w != nil {
		fmt.Println()
		fmt.Println("World:")
		fmt.Printf("  Floors:   %d\n", len(w.Floors))
		fmt.Printf("  Zones:    %d\n", w.ZoneCount)
		fmt.Printf("  Ambient:  #%02x%02x%02x\n", w.Ambient.R, w.Ambient.G, w.Ambient.B)
	}

	fmt.Println()
	fmt.Println("Chunks by type:")
	for _, c := range doc.Counts() {
		fmt.Printf("  %-16s %5d\n", c.Type, c.Count)
	}
	return nil
}

func cmdChunks(args []string) error {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	limit := fs.Int("n", 0, "Stop after N chunks (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: bsptool chunks [-n N] <file.bsp>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	stream, compressed, err := bsp.OpenStream(f)
	if err != nil {
		return err
	}
	if compressed {
		fmt.Println("# gzip compressed")
	}

	cr := bsp.NewChunkReader(stream, bsp.WithLogger(logger.Log))
	fmt.Printf("%-5s %-10s %-16s %10s %8s\n", "#", "OFFSET", "TYPE", "SIZE", "VERSION")
	for i := 0; *limit == 0 || i < *limit; i++ {
		chunk, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		h := chunk.Header
		fmt.Printf("%-5d %-10d %-16s %10s %#8x\n", i, chunk.Offset, h.Type, humanize.Bytes(uint64(h.Size)), h.Version)
	}
	return nil
}

func cmdScan(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: bsptool scan <dir>")
	}
	root := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := scan.New(cfg.Scan, logger.Log).Run(ctx, root)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			logger.Warn("decode failed", zap.String("file", r.Path), zap.Error(r.Err))
			fmt.Printf("FAIL  %s: %v\n", r.Path, r.Err)
		case r.DupOf != "":
			fmt.Printf("SKIP  %s (same as %s)\n", r.Path, r.DupOf)
		default:
			fmt.Printf("OK    %s (%s, %d chunks)\n", r.Path, humanize.Bytes(uint64(r.Size)), r.Chunks)
		}
	}

	sum := scan.Summarize(results)
	logger.Info("scan finished",
		zap.String("root", root),
		zap.Int("files", sum.Files),
		zap.Int("failed", sum.Failed),
		zap.Int("duplicates", sum.Duplicates))
	fmt.Printf("\n%d files, %s: %d ok, %d failed, %d duplicates\n",
		sum.Files, humanize.Bytes(uint64(sum.Bytes)), sum.OK, sum.Failed, sum.Duplicates)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", sum.Failed, sum.Files)
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	write := fs.String("write", "", "Save the effective config to this path")
	save := fs.Bool("save", false, "Save the effective config to the user config directory")
	fs.Parse(args)

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	os.Stdout.Write(data)

	switch {
	case *write != "":
		return cfg.SaveTo(*write)
	case *save:
		return cfg.Save()
	}
	return nil
}
