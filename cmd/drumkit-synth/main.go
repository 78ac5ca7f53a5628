// ABOUTME: Entry point for the drumkit sample synthesizer
// ABOUTME: Writes the synthesized stock kit as WAV files so the default config plays out of the box
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/harperreed/drumkit-go/internal/logging"
	"github.com/harperreed/drumkit-go/internal/synth"
	"github.com/harperreed/drumkit-go/pkg/audio"
)

var (
	outDir   = flag.String("out", "samples", "Directory to write WAV files into")
	rate     = flag.Int("rate", 44100, "Sample rate in Hz")
	bits     = flag.Int("bits", 16, "Bit depth (8 or 16 for the oto device)")
	channels = flag.Int("channels", 2, "Channel count (1 or 2)")
	logLevel = flag.String("log-level", "info", "Log level: none, error, warn, info, debug")
)

func main() {
	flag.Parse()

	if _, err := logging.Configure(logging.Options{Level: *logLevel}); err != nil {
		fmt.Fprintf(os.Stderr, "drumkit-synth: %v\n", err)
		os.Exit(1)
	}

	format := audio.Format{SampleRate: *rate, BitDepth: *bits, Channels: *channels}
	if err := format.Validate(); err != nil {
		slog.Error("invalid output format", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("failed to create output directory", "dir", *outDir, "err", err)
		os.Exit(1)
	}

	for _, name := range synth.Names() {
		path := filepath.Join(*outDir, name+".wav")
		if err := writeDrum(path, name, format); err != nil {
			slog.Error("failed to write sample", "name", name, "err", err)
			os.Exit(1)
		}
		slog.Info("wrote sample", "name", name, "path", path, "format", format.String())
	}
}

func writeDrum(path, name string, format audio.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := synth.WriteWAV(f, name, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
