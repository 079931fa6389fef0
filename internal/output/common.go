package output

import (
	"io"
	"os"
	"time"
)

const reportDateTimeLayout = time.RFC3339

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func shortHash(hash string) string {
	if len(hash) <= 8 {
		return hash
	}
	return hash[:8]
}

func rangeLabel(from, to string) string {
	if from == "" {
		return to
	}
	return from + ".." + to
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.OutputPath == "" {
		if options.Out != nil {
			return options.Out, nil, nil
		}
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// withOutput opens the destination, runs fn and closes any file it opened.
func withOutput(options OutputOptions, fn func(io.Writer) error) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return fn(out)
}
