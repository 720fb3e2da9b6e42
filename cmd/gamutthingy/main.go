/*
NAME
  main.go

DESCRIPTION
  gamutthingy is the offline color-gamut mapper's command-line driver: it
  loads a gconfig file, builds the source/dest gamut boundary descriptors
  (with optional CRT front-end and Spiral CARISMA pre-warp), the optional
  CRT front/back emulation and NES PPU front end, wires it all into a
  pipeline.Pipeline, and runs it over one input image.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Command gamutthingy maps an image's colors from one RGB gamut to
// another, optionally round-tripped through CRT and NES PPU composite
// signal emulation first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/crtlab/gamutthingy/gconfig"
	"github.com/crtlab/gamutthingy/internal/crt"
	"github.com/crtlab/gamutthingy/internal/errs"
	"github.com/crtlab/gamutthingy/internal/gamut"
	"github.com/crtlab/gamutthingy/pipeline"
)

const version = "v1.0.0"

const (
	logPath      = "gamutthingy.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	showVersion := flag.Bool("version", false, "show version")
	configPath := flag.String("config", "", "path to a gconfig file (required)")
	inputPath := flag.String("input", "", "input image path (.png, .bmp, .webp)")
	outputPath := flag.String("output", "", "output image path (.png, .bmp, .webp)")
	sourceGamut := flag.String("source-gamut", "", "override the config's source_gamut")
	destGamut := flag.String("dest-gamut", "", "override the config's dest_gamut")
	useMapTable := flag.Bool("memo", true, "memoize repeated 8-bit RGB triples across the image")
	watch := flag.Bool("watch", false, "re-run every time -input is rewritten, instead of exiting")
	fitB := flag.Bool("fit-b", false, "cross-check the BT.1886 bisection against an independent optimizer")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logging.Info, io.MultiWriter(fileLog, os.Stderr), false)

	if *configPath == "" || *inputPath == "" || *outputPath == "" {
		log.Fatal("gamutthingy: -config, -input and -output are all required")
	}

	cfgFile, err := os.Open(*configPath)
	if err != nil {
		log.Fatal("gamutthingy: opening config", "error", err.Error())
	}
	cfg, err := gconfig.Load(cfgFile)
	cfgFile.Close()
	if err != nil {
		fail(log, "gamutthingy: loading config", &errs.ConfigError{Reason: "loading " + *configPath, Cause: err})
	}

	if *sourceGamut != "" {
		cfg.SourceGamut = *sourceGamut
	}
	if *destGamut != "" {
		cfg.DestGamut = *destGamut
	}

	if *fitB {
		runFitB(cfg, log)
	}

	pl, table, err := buildPipeline(cfg, log)
	if err != nil {
		fail(log, "gamutthingy: building pipeline", err)
	}
	if !*useMapTable {
		table = nil
	}

	runOnce := func(in string) error {
		img, err := loadImage(in)
		if err != nil {
			return err
		}
		if err := pl.RunImage(context.Background(), img, table); err != nil {
			return err
		}
		return saveImage(*outputPath, img)
	}

	if *watch {
		if err := watchAndRun(*inputPath, log, runOnce); err != nil {
			log.Fatal("gamutthingy: watch", "error", err.Error())
		}
		return
	}

	if err := runOnce(*inputPath); err != nil {
		fail(log, "gamutthingy: processing image", err)
	}
	log.Info("gamutthingy: wrote output", "path", *outputPath)
}

// fail logs err and exits with the exit code its failure category carries
// (configuration, initialization, or image I/O), or 1 for anything else.
func fail(log logging.Logger, msg string, err error) {
	log.Error(msg, "error", err.Error())
	var cfgErr *errs.ConfigError
	var initErr *errs.InitError
	var ioErr *errs.ImageIOError
	switch {
	case errors.As(err, &cfgErr):
		os.Exit(errs.ExitConfig)
	case errors.As(err, &initErr):
		os.Exit(errs.ExitInit)
	case errors.As(err, &ioErr):
		os.Exit(errs.ExitImageIO)
	}
	os.Exit(1)
}

// runFitB cross-checks the BT.1886 black-level offset fitted from the
// configured CRT black and white levels, logging a warning if the independent optimizer
// disagrees with the bisection by more than 1e-6.
func runFitB(cfg *gconfig.Config, log logging.Logger) {
	if cfg.CRTModeOpt == gconfig.CRTNone || cfg.BlackLevel == 0 {
		log.Info("fit-b: no CRT black level configured, nothing to check")
		return
	}
	white := cfg.WhiteLevel
	if white == 0 {
		white = 1.0
	}
	want := crt.NewBT1886(cfg.BlackLevel, white, log).B
	got, diff, err := crossCheckBT1886B(cfg.BlackLevel, white, want)
	if err != nil {
		log.Warning("fit-b: cross-check failed", "error", err.Error())
		return
	}
	if diff > 1e-6 {
		log.Warning("fit-b: optimizer disagrees with bisection", "bisection_b", want, "optimizer_b", got, "diff", diff)
		return
	}
	log.Info("fit-b: bisection confirmed", "b", want, "diff", diff)
}

// buildPipeline translates cfg into a ready-to-run pipeline.Pipeline and
// its memo table.
func buildPipeline(cfg *gconfig.Config, log logging.Logger) (*pipeline.Pipeline, *pipeline.MapTable, error) {
	var crtFrontDesc, crtBackDesc *crt.Descriptor
	if cfg.CRTModeOpt != gconfig.CRTNone {
		d, err := buildCRT(cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("building crt profile: %w", err)
		}
		if cfg.CRTModeOpt == gconfig.CRTFront {
			crtFrontDesc = d
		} else {
			crtBackDesc = d
		}
	}

	spiral, err := buildSpiral(cfg)
	if err != nil {
		return nil, nil, err
	}

	source, err := buildGBD("source", cfg.SourceGamut, cfg.SourceWhitepoint, cfg.SourceCustomXY, cfg.SourceCustomCCT, cfg.CATKind, crtFrontDesc, spiral, log)
	if err != nil {
		return nil, nil, err
	}
	dest, err := buildGBD("dest", cfg.DestGamut, cfg.DestWhitepoint, cfg.DestCustomXY, cfg.DestCustomCCT, cfg.CATKind, crtBackDesc, gamut.SpiralCARISMA{}, log)
	if err != nil {
		return nil, nil, err
	}

	mapParams, direct, err := buildMapParams(cfg, source, dest)
	if err != nil {
		return nil, nil, err
	}

	if spiral.Enabled {
		maxScale := cfg.SpiralMaxScale
		if maxScale == 0 {
			maxScale = 1.0
		}
		source.PrepareSpiralCARISMA(dest, maxScale, mapParams)
	}

	var nesFrontEnd *pipeline.NESFrontEnd
	if sim, ok, err := buildNES(cfg); err != nil {
		return nil, nil, fmt.Errorf("building nes simulation: %w", err)
	} else if ok {
		nesFrontEnd = buildNESFrontEnd(sim)
	}

	params := pipeline.Params{
		Source:      source,
		Dest:        dest,
		Gamma:       buildGammaCodec(cfg),
		MapParams:   mapParams,
		DirectColor: direct,
		NES:         nesFrontEnd,
		Logger:      log,
	}
	if crtFrontDesc != nil {
		params.CRTFront = crtFrontDesc
	}
	if crtBackDesc != nil {
		params.CRTBack = crtBackDesc
	}

	return pipeline.New(params), pipeline.NewMapTable(), nil
}
