// dungeongen generates one dungeon and prints, exports or archives it.
//
// Usage:
//
//	go run ./cmd/dungeongen -seed 42 -width 30 -height 20 -out maps/42.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lawnchairsociety/dungeongen/internal/client"
	"github.com/lawnchairsociety/dungeongen/internal/config"
	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"github.com/lawnchairsociety/dungeongen/internal/export"
	"github.com/lawnchairsociety/dungeongen/internal/logger"
	"github.com/lawnchairsociety/dungeongen/internal/store"
)

func main() {
	configFile := flag.String("config", "data/dungeongen.yaml", "Path to service config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time when unset)")
	width := flag.Int("width", 0, "Logical maze width (0 keeps the configured value)")
	height := flag.Int("height", 0, "Logical maze height (0 keeps the configured value)")
	rooms := flag.Int("rooms", -1, "Room placement attempts (-1 keeps the configured value)")
	outFile := flag.String("out", "", "Write the dungeon as YAML to this file")
	dbFile := flag.String("db", "", "Archive the dungeon in this SQLite database")
	remote := flag.String("remote", "", "Ask a running dungeond (ws://host:port/ws) instead of generating locally")
	quiet := flag.Bool("quiet", false, "Do not print the map")
	legend := flag.Bool("legend", true, "Print a legend under the map")
	flag.Parse()

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging config: %v\n", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if err := run(options{
		configFile: *configFile,
		seed:       *seed,
		randomSeed: !seedSet,
		width:      *width,
		height:     *height,
		rooms:      *rooms,
		outFile:    *outFile,
		dbFile:     *dbFile,
		remote:     *remote,
		quiet:      *quiet,
		legend:     *legend,
	}); err != nil {
		logger.Error("generation failed", "error", err)
		logger.Close()
		os.Exit(1)
	}
}

type options struct {
	configFile    string
	seed          int64
	randomSeed    bool
	width, height int
	rooms         int
	outFile       string
	dbFile        string
	remote        string
	quiet, legend bool
}

func run(opts options) error {
	serviceCfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}

	cfg := serviceCfg.Generation
	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.rooms >= 0 {
		cfg.RoomCount = opts.rooms
	}

	seed := opts.seed
	if opts.randomSeed {
		seed = time.Now().UnixNano()
		logger.Info("seed selected", "seed", seed, "random", true)
	}

	doc, err := produce(cfg, seed, opts.remote)
	if err != nil {
		return err
	}

	if opts.outFile != "" {
		if err := export.WriteYAML(opts.outFile, doc); err != nil {
			return err
		}
		logger.Info("dungeon written", "path", opts.outFile)
	}

	if opts.dbFile != "" {
		archive, err := store.Open(store.DefaultConfig(opts.dbFile))
		if err != nil {
			return err
		}
		defer archive.Close()

		id, created, err := archive.Save(context.Background(), cfg, doc)
		if err != nil {
			return err
		}
		logger.Info("dungeon archived", "path", opts.dbFile, "id", id, "new", created)
	}

	if !opts.quiet {
		render(os.Stdout, doc, opts.legend)
	}
	fmt.Println(summary(doc))
	return nil
}

// produce generates locally, or through dungeond when remote is set.
func produce(cfg dungeon.Configuration, seed int64, remote string) (*export.Document, error) {
	started := time.Now()
	if remote == "" {
		d, err := dungeon.Generate(cfg, seed)
		if err != nil {
			return nil, err
		}
		logger.Debug("dungeon generated", "elapsed", time.Since(started))
		return export.NewDocument(d, seed), nil
	}

	c, err := client.Dial(context.Background(), remote, nil)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	doc, id, err := c.Generate(seed, &cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("dungeon received", "remote", remote, "archive_id", id, "elapsed", time.Since(started))
	return doc, nil
}
