package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ChainSafe/keystack/renderer"
)

// writeReport renders to stdout when outputPath is empty, otherwise to the
// truncated file at outputPath.
func writeReport(format, outputPath string, render func(renderer.Renderer, io.Writer) error) error {
	r, ok := renderer.New(format)
	if !ok {
		return fmt.Errorf("invalid format: %s", format)
	}

	var output *os.File
	if outputPath == "" {
		output = os.Stdout
	} else {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		output, err = os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = output.Close()
		}()
	}
	return render(r, output)
}
