// Package main provides the csvroll command-line tool. CSVRoll streams a
// delimited text file (plain, gzip or zstd compressed) one row at a time,
// coerces fields to typed scalars, and aggregates one numeric column into
// fixed tumbling time windows keyed by a timestamp column. Each closed
// window is printed as one CSV line:
//
//	window_start,window_end,count,sum,avg,min,max
//
// The final partial window is flushed at end of input. Rows must arrive in
// non-decreasing timestamp order.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"net/http"
	_ "net/http/pprof"

	"github.com/csvroll/csvroll/internal/agg"
	"github.com/csvroll/csvroll/internal/coerce"
	"github.com/csvroll/csvroll/internal/config"
	"github.com/csvroll/csvroll/internal/io/pool"
	"github.com/csvroll/csvroll/internal/lexer"
	"github.com/csvroll/csvroll/internal/logging"
	"github.com/csvroll/csvroll/internal/stream"
	"github.com/csvroll/csvroll/internal/version"
)

const resultHeader = "window_start,window_end,count,sum,avg,min,max\n"

func main() {
	args := config.DefaultArgs()
	var displayVersion bool
	var noHeader bool
	var pprofAddr string
	var cpuprofile string

	flag.BoolVar(&args.Quiet, "quiet", false, "Quiet output mode")
	flag.BoolVar(&displayVersion, "version", false, "Display version")
	flag.BoolVar(&noHeader, "noHeader", false, "Omit the result header line")
	flag.StringVar(&args.InputFile, "file", "", "File to read ('-' or empty for stdin)")
	flag.StringVar(&args.Delimiter, "delimiter", args.Delimiter, "Field delimiter character")
	flag.StringVar(&args.Quote, "quote", args.Quote, "Quote character")
	flag.DurationVar(&args.WindowSize, "window", args.WindowSize, "Tumbling window size")
	flag.IntVar(&args.TSColumn, "tsCol", args.TSColumn, "Timestamp column index")
	flag.IntVar(&args.ValColumn, "valCol", args.ValColumn, "Value column index")
	flag.StringVar(&pprofAddr, "pprof", "", "Start PProf server on this address")
	flag.StringVar(&cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	flag.Parse()
	config.Setup(&args, flag.Args())

	if displayVersion {
		version.PrintAndExit()
	}

	var profileFile *os.File
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		profileFile = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.NewLogger()
	ctx = logging.WithLogger(ctx, logger)

	if pprofAddr != "" {
		go http.ListenAndServe(pprofAddr, nil)
		logger.Infow("Started PProf", "addr", pprofAddr)
	}

	status := run(ctx, os.Stdout, !noHeader)

	// os.Exit skips deferred calls, so cleanup happens explicitly here.
	if profileFile != nil {
		pprof.StopCPUProfile()
		profileFile.Close()
	}
	logger.Sync()

	os.Exit(status)
}

// run streams the configured input through the aggregator, writing one CSV
// line per closed window. It returns the process exit status.
func run(ctx context.Context, out io.Writer, header bool) int {
	logger := logging.FromContext(ctx)
	common := config.Common

	lex := lexer.NewLexerWith(common.Delimiter, common.Quote)
	rows, cleanup, err := openRowStream(common, lex)
	if err != nil {
		logger.Errorw("Cannot open input", "error", err)
		return 2
	}
	defer cleanup()

	aggregator, err := agg.NewAggregator(common.WindowSize, common.TSColumn, common.ValColumn)
	if err != nil {
		logger.Errorw("Cannot create aggregator", "error", err)
		return 2
	}

	if header {
		io.WriteString(out, resultHeader)
	}

	added := 0
	for rows.Scan() {
		if ctx.Err() != nil {
			logger.Warnw("Interrupted", "rowsAdded", added)
			return 1
		}
		result, err := aggregator.Add(rows.Row())
		if err != nil {
			logger.Errorw("Aggregation failed", "row", added+1, "error", err)
			return 1
		}
		added++
		if result != nil {
			writeResult(out, result)
		}
	}
	if err := rows.Err(); err != nil {
		logger.Errorw("Reading input failed", "error", err)
		return 1
	}
	if result := aggregator.Flush(); result != nil {
		writeResult(out, result)
	}

	if !common.Quiet {
		logger.Infow("Done", "rows", added)
	}
	return 0
}

// rowScanner is the part of a row stream the aggregation loop needs; the
// file-backed and the stdin-backed stream both satisfy it.
type rowScanner interface {
	Scan() bool
	Row() coerce.Row
	Err() error
}

func writeResult(out io.Writer, result *agg.WindowResult) {
	buf := pool.BytesBuffer.Get().(*bytes.Buffer)
	buf.WriteString(result.CSV())
	buf.WriteByte('\n')
	out.Write(buf.Bytes())
	pool.RecycleBytesBuffer(buf)
}

// openRowStream opens the configured input as a row stream. Files go through
// the file-backed stream with scoped resource release; "-" or an empty path
// mean stdin.
func openRowStream(common *config.CommonConfig, lex *lexer.Lexer) (rowScanner, func(), error) {
	if common.InputFile == "" || common.InputFile == "-" {
		source := stream.NewReaderSource(os.Stdin)
		return stream.NewRowStreamWith(source, lex), func() { source.Close() }, nil
	}
	fs, err := stream.OpenFileWith(common.InputFile, lex)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() { fs.Close() }, nil
}
