// Package fileprocessor handles file processing operations of the command line tools.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile disassembles the input file of the options and writes the
// assembly code to the output file, or stdout if no output file is set.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, output string,
	disasmOptions options.Disassembler) (rerr error) {

	writer, err := createWriter(output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != io.Writer(os.Stdout) {
			if err := closer.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("closing output file: %w", err)
			}
		}
	}()

	p := pipeline.New(logger)
	if _, err := p.Disassemble(ctx, opts, disasmOptions, writer); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

func createWriter(output string) (io.Writer, error) {
	if output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, name string, quiet bool, version, commit, date string) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, "")))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
