package main

import (
	"flag"
	"fmt"

	droneshow "github.com/INMD1-Repo/Visualcomputing-Dron"
	"github.com/INMD1-Repo/Visualcomputing-Dron/internal/config"
)

const (
	defaultInput      = "image.png"
	defaultOutput     = "example-drone-show.json"
	defaultDroneCount = 13923
	defaultMaxSize    = 600
)

type cliFlags struct {
	Input         *string
	Output        *string
	Config        *string
	DroneCount    *int
	MaxSize       *float64
	Seed          *int64
	Alpha         *int
	Brightness    *int
	MaxLayers     *int
	ZGap          *float64
	PaletteSize   *int
	PaletteMethod *string
	Title         *string
	LayerID       *string
	LayerName     *string
	Duration      *int
	MaskOut       *string
	PaletteOut    *string
	Check         *bool
	Help          *bool
	Version       *bool

	// shorthand -> long name
	aliases map[string]string
}

func defineFlags(fs *flag.FlagSet) *cliFlags {
	def := droneshow.DefaultOptions()
	f := &cliFlags{aliases: map[string]string{}}

	f.Input = f.defineString(fs, "input", "i", defaultInput, "Source image (png, jpeg, gif, bmp, tiff, webp).")
	f.Output = f.defineString(fs, "output", "o", defaultOutput, "Show document to write.")
	f.Config = f.defineString(fs, "config", "c", "", "JSON file with pipeline settings. Explicit flags override it.")
	f.DroneCount = f.defineInt(fs, "drones", "n", defaultDroneCount, "Number of drones to place.")
	f.MaxSize = f.defineFloat64(fs, "size", "s", defaultMaxSize, "Span of the longer axis of the formation.")
	f.Seed = f.defineInt64(fs, "seed", "", def.Seed, "Sampling seed. Negative picks a random one.")
	f.Alpha = f.defineInt(fs, "alpha-threshold", "", int(def.AlphaThreshold), "Alpha above this is foreground (0-255).")
	f.Brightness = f.defineInt(fs, "brightness-threshold", "", int(def.BrightnessThreshold), "Luma below this is foreground for opaque images (0-255).")
	f.MaxLayers = f.defineInt(fs, "layers", "l", def.MaxLayers, "Number of height tiers.")
	f.ZGap = f.defineFloat64(fs, "zgap", "z", def.ZGap, "Height between tiers.")
	f.PaletteSize = f.defineInt(fs, "palette", "p", 0, "Snap colors to a palette of this many colors (0 keeps source colors).")
	f.PaletteMethod = f.defineString(fs, "palette-method", "", def.PaletteMethod.String(), "Palette extraction: dominantcolor or kmeans.")
	f.Title = f.defineString(fs, "title", "", def.Title, "Document title.")
	f.LayerID = f.defineString(fs, "layer-id", "", def.LayerID, "Layer id.")
	f.LayerName = f.defineString(fs, "layer-name", "", def.LayerName, "Layer name.")
	f.Duration = f.defineInt(fs, "duration", "d", def.Duration, "Layer duration.")
	f.MaskOut = f.defineString(fs, "mask", "", "", "Also write the filled foreground mask as PNG.")
	f.PaletteOut = f.defineString(fs, "palette-out", "", "", "Also write the palette swatch as PNG.")
	f.Check = f.defineBool(fs, "check", "", false, "Validate an existing show document given by -output and exit.")
	f.Help = f.defineBool(fs, "help", "h", false, "Displays this help.")
	// -v belongs to glog.
	f.Version = f.defineBool(fs, "version", "", false, "Displays the version.")
	return f
}

// options resolves defaults, then the config file, then flags set on the
// command line.
func (f *cliFlags) options(fs *flag.FlagSet, cfg *config.ShowConfig) (droneshow.Options, error) {
	opt := droneshow.DefaultOptions()
	opt.DroneCount = defaultDroneCount
	opt.MaxSize = defaultMaxSize
	if cfg != nil {
		cfg.Apply(&opt)
	}

	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		name := fl.Name
		if long, ok := f.aliases[name]; ok {
			name = long
		}
		switch name {
		case "drones":
			opt.DroneCount = *f.DroneCount
		case "size":
			opt.MaxSize = *f.MaxSize
		case "seed":
			opt.Seed = *f.Seed
		case "alpha-threshold":
			opt.AlphaThreshold, err = byteFlag(name, *f.Alpha)
		case "brightness-threshold":
			opt.BrightnessThreshold, err = byteFlag(name, *f.Brightness)
		case "layers":
			opt.MaxLayers = *f.MaxLayers
		case "zgap":
			opt.ZGap = *f.ZGap
		case "palette":
			opt.PaletteSize = *f.PaletteSize
		case "palette-method":
			m, ok := droneshow.ParsePaletteMethod(*f.PaletteMethod)
			if !ok {
				err = fmt.Errorf("unknown palette method %q", *f.PaletteMethod)
				return
			}
			opt.PaletteMethod = m
		case "title":
			opt.Title = *f.Title
		case "layer-id":
			opt.LayerID = *f.LayerID
		case "layer-name":
			opt.LayerName = *f.LayerName
		case "duration":
			opt.Duration = *f.Duration
		}
	})
	if err != nil {
		return opt, err
	}
	return opt, opt.Validate()
}

func byteFlag(name string, v int) (uint8, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("-%s must be between 0 and 255, got %d", name, v)
	}
	return uint8(v), nil
}

func (f *cliFlags) alias(name, shortHand string) bool {
	if shortHand == name || shortHand == "" {
		return false
	}
	f.aliases[shortHand] = name
	return true
}

func (f *cliFlags) defineString(fs *flag.FlagSet, name, shortHand, defaultValue, usage string) *string {
	var output string
	fs.StringVar(&output, name, defaultValue, usage)
	if f.alias(name, shortHand) {
		fs.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func (f *cliFlags) defineInt(fs *flag.FlagSet, name, shortHand string, defaultValue int, usage string) *int {
	var output int
	fs.IntVar(&output, name, defaultValue, usage)
	if f.alias(name, shortHand) {
		fs.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func (f *cliFlags) defineInt64(fs *flag.FlagSet, name, shortHand string, defaultValue int64, usage string) *int64 {
	var output int64
	fs.Int64Var(&output, name, defaultValue, usage)
	if f.alias(name, shortHand) {
		fs.Int64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func (f *cliFlags) defineFloat64(fs *flag.FlagSet, name, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	fs.Float64Var(&output, name, defaultValue, usage)
	if f.alias(name, shortHand) {
		fs.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func (f *cliFlags) defineBool(fs *flag.FlagSet, name, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	fs.BoolVar(&output, name, defaultValue, usage)
	if f.alias(name, shortHand) {
		fs.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
