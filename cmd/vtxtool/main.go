// vtxtool is a CLI utility for inspecting and rewriting raw vertex streams.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/vertexcodec/internal/config"
	"github.com/Faultbox/vertexcodec/internal/logger"
)

var errUsage = errors.New("usage")

func main() {
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, args, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			printUsage(os.Stderr)
		} else {
			logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		}
		logger.Sync()
		os.Exit(1)
	}
}

// run dispatches a command. Command output goes to out; logs go to stderr.
func run(cfg *config.Config, args []string, out io.Writer) error {
	command := args[0]
	args = args[1:]

	switch command {
	case "layouts":
		return cmdLayouts(cfg, out)
	case "classify":
		return cmdClassify(cfg, out)
	case "decode-map":
		return cmdDecodeMap(cfg, args, out)
	case "encode-map":
		return cmdEncodeMap(cfg, args, out)
	case "merge":
		return cmdMerge(cfg, args, out)
	case "decode-nvr":
		return cmdDecodeNVR(cfg, args, out)
	case "init-config":
		return cmdInitConfig(cfg, args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `vtxtool - raw vertex stream utility

Usage:
  vtxtool [-config file] [-debug] [-log-level lvl] [-log-file file] <command> [options]

Commands:
  layouts                                      List configured layouts and strides
  classify                                     Show vertex type and ground-ness per material
  decode-map [-n N] <layout> <file>            Decode a map geometry vertex stream
  encode-map [-normalize] <layout> <in> <out>  Decode and re-encode a map geometry stream
  merge <layoutA> <fileA> <layoutB> <fileB> <out>
                                               Merge two attribute streams, A preferred
  decode-nvr [-n N] <material> <file>          Decode a world render vertex stream
  init-config [path]                           Write the effective config as YAML

Examples:
  vtxtool layouts
  vtxtool decode-map -n 10 standard mesh0.vtx
  vtxtool merge standard pos.vtx lightmapped lm.vtx merged.vtx
  vtxtool decode-nvr grass world.vtx`)
}
