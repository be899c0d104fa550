// Command dronesprite writes the glowing point texture used for each drone.
package main

import (
	"flag"

	"github.com/INMD1-Repo/Visualcomputing-Dron/sprite"
	"github.com/golang/glog"
)

func main() {
	def := sprite.DefaultOptions()
	output := flag.String("output", "drone.png", "PNG file to write.")
	size := flag.Int("size", def.Size, "Canvas side in pixels.")
	radius := flag.Float64("radius", def.Radius, "Radius of the opaque core.")
	glow := flag.Int("glow", def.Glow, "Width of the fading edge in pixels.")
	flag.Parse()
	defer glog.Flush()

	opt := sprite.Options{Size: *size, Radius: *radius, Glow: *glow}
	if err := sprite.Save(*output, opt); err != nil {
		glog.Exitf("writing %s: %v", *output, err)
	}
	glog.Infof("created %s", *output)
}
