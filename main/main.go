// Command endianpackgen generates fixed-layout codec methods for struct
// types in a Go source file. Types opt in with an //endianpack:layout
// comment or are named explicitly with -types.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/rawbytedev/endianpack/pkg/gen"
)

type config struct {
	In    string   `toml:"in"`
	Out   string   `toml:"out"`
	Types []string `toml:"types"`
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		in      = flag.String("in", "", "input Go source file")
		out     = flag.String("out", "", "output file (default <in>_endianpack.go)")
		types   = flag.String("types", "", "comma-separated struct names (default: marked types)")
		cfgPath = flag.String("config", "endianpack.toml", "TOML config file, used when present")
	)
	flag.Parse()

	var cfg config
	if _, err := toml.DecodeFile(*cfgPath, &cfg); err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Str("config", *cfgPath).Msg("cannot read config")
	}
	if *in != "" {
		cfg.In = *in
	}
	if *out != "" {
		cfg.Out = *out
	}
	if *types != "" {
		cfg.Types = strings.Split(*types, ",")
	}
	if cfg.In == "" {
		log.Fatal().Msg("no input file: pass -in or set it in endianpack.toml")
	}
	if cfg.Out == "" {
		cfg.Out = strings.TrimSuffix(cfg.In, ".go") + "_endianpack.go"
	}

	src, err := gen.Generate(cfg.In, cfg.Types)
	if err != nil {
		log.Fatal().Err(err).Str("in", cfg.In).Msg("generation failed")
	}
	if err := os.WriteFile(cfg.Out, src, 0o644); err != nil {
		log.Fatal().Err(err).Str("out", cfg.Out).Msg("cannot write output")
	}
	log.Info().Str("in", cfg.In).Str("out", cfg.Out).Int("bytes", len(src)).Msg("generated")
}
