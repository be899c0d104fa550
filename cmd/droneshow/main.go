// Command droneshow converts an image into a drone-show formation document.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	droneshow "github.com/INMD1-Repo/Visualcomputing-Dron"
	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/config"
	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/monitoring"
	"github.com/INMD1-Repo/Visualcomputing-Dron/utils"
	"github.com/golang/glog"
)

const version = "1.0.0"

func main() {
	flags := defineFlags(flag.CommandLine)
	flag.Parse()
	defer glog.Flush()

	if *flags.Help {
		flag.Usage()
		return
	}
	if *flags.Version {
		fmt.Printf("droneshow v%s\n", version)
		return
	}

	monitoring.SetLogger(glog.Infof)

	if *flags.Check {
		checkDocument(*flags.Output)
		return
	}

	var cfg *config.ShowConfig
	if *flags.Config != "" {
		var err error
		if cfg, err = config.LoadShowConfig(*flags.Config); err != nil {
			glog.Exitf("loading %s: %v", *flags.Config, err)
		}
	}
	opt, err := flags.options(flag.CommandLine, cfg)
	if err != nil {
		glog.Exitf("invalid options: %v", err)
	}

	if err := convert(flags, opt, os.Stdout, os.Stderr); err != nil {
		glog.Exitf("%v", err)
	}
}

// convert runs the pipeline for the parsed flags. Warnings go to stderr
// because glog only echoes errors to the terminal by default.
func convert(flags *cliFlags, opt droneshow.Options, stdout, stderr io.Writer) error {
	glog.Infof("processing image %s", *flags.Input)
	fb, err := utils.ConvertFile(*flags.Input, *flags.Output, opt)
	if fb != nil {
		for _, w := range fb.Warnings {
			glog.Warningf("%s", w)
			fmt.Fprintf(stderr, "warning: %s\n", w)
		}
		writeDebugOutputs(fb, *flags.MaskOut, *flags.PaletteOut)
	}
	if err != nil {
		return err
	}

	s := droneshow.Summarize(fb.ShowPoints)
	fmt.Fprintf(stdout, "wrote %s: %d drones, %.1f x %.1f, %d colors on %d layers\n",
		*flags.Output, s.Points, s.Width(), s.Height(), s.DistinctColors, s.LayersUsed)
	return nil
}

func writeDebugOutputs(fb *droneshow.FieldBuilder, maskPath, palettePath string) {
	if maskPath != "" && fb.Mask != nil {
		if err := utils.SaveMask(fb.Mask, maskPath); err != nil {
			glog.Errorf("writing mask: %v", err)
		}
	}
	if palettePath != "" && len(fb.Palette) > 0 {
		if err := utils.SavePalette(fb.Palette, 64, palettePath); err != nil {
			glog.Errorf("writing palette: %v", err)
		}
	}
}

func checkDocument(path string) {
	doc, err := utils.ReadDocumentFile(path)
	if err != nil {
		glog.Exitf("%s: %v", path, err)
	}
	for _, l := range doc.Layers {
		s := droneshow.Summarize(l.Points)
		fmt.Printf("%s: layer %q (%s) %d points, duration %d, z %.1f..%.1f\n",
			path, l.ID, l.Type, s.Points, l.Duration, s.MinZ, s.MaxZ)
	}
}
