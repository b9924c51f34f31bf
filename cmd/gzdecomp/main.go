// Command gzdecomp is a CLI for decompressing a GZIP or raw DEFLATE stream.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"github.com/adilg123/gzdecomp/internal/config"
	"github.com/adilg123/gzdecomp/internal/deflate"
	"github.com/adilg123/gzdecomp/internal/gzip"
	"github.com/adilg123/gzdecomp/internal/sink"
	"github.com/adilg123/gzdecomp/internal/source"
)

// CLI is the kong argument struct for gzdecomp.
type CLI struct {
	In       string `kong:"help='Path to the compressed input file',type='path',short='i',required"`
	Out      string `kong:"help='Path to write the decompressed output',type='path',short='o',required"`
	Profile  string `kong:"help='Buffer profile: minimal or default',enum='minimal,default',default='default',short='p'"`
	Raw      bool   `kong:"help='Treat the input as a raw DEFLATE stream instead of GZIP'"`
	NoVerify bool   `kong:"help='Skip GZIP checksum/ISIZE verification',short='n'"`
	Quiet    bool   `kong:"help='Suppress the progress bar',short='q'"`

	Version kong.VersionFlag `help:"Show version and exit" short:"v"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, kong.Vars{"version": "0.1.0"})

	if err := run(&cli); err != nil {
		color.Red("gzdecomp: %v", err)
		kctx.Exit(1)
	}
}

func run(cli *CLI) error {
	opts := config.Minimal()
	if cli.Profile == "default" {
		opts = config.Default()
	}
	opts.VerifyChecksum = opts.VerifyChecksum && !cli.NoVerify

	in, err := source.FromFile(cli.In)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	stat, err := os.Stat(cli.In)
	if err != nil {
		return fmt.Errorf("statting input: %w", err)
	}

	var bar *pb.ProgressBar
	if !cli.Quiet {
		bar = pb.New64(stat.Size())
		bar.Set(pb.Bytes, true)
		bar.Start()
		defer bar.Finish()
	}

	out, err := os.Create(cli.Out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	var stream sink.Stream
	var header *gzip.Header
	if cli.Raw {
		stream = deflate.New(in, opts.DeflateConfig())
	} else {
		reader, err := gzip.NewReader(in, gzip.Config{
			Config:         opts.DeflateConfig(),
			VerifyChecksum: opts.VerifyChecksum,
		})
		if err != nil {
			return fmt.Errorf("parsing GZIP header: %w", err)
		}
		header = reader.Header()
		stream = reader
	}

	total := 0
	for {
		chunk, ok, rerr := sink.ReadSome(stream, opts.MinOutputBufferSize)
		if rerr != nil {
			return fmt.Errorf("decompressing: %w", rerr)
		}
		if !ok {
			break
		}
		n, werr := out.Write(chunk)
		if werr != nil {
			return fmt.Errorf("writing output: %w", werr)
		}
		total += n
		if bar != nil {
			bar.SetCurrent(int64(total))
		}
	}

	if header != nil && header.Name != "" {
		color.Green("decompressed %q -> %s (%d bytes)", header.Name, cli.Out, total)
	} else {
		color.Green("decompressed %s -> %s (%d bytes)", cli.In, cli.Out, total)
	}
	return nil
}
