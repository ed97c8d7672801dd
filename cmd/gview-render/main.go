// Command gview-render renders a small demo scene graph to an image file.
//
// Usage:
//
//	gview-render -o out.png -w 800 -h 600 [-config viewer.toml] [-v]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/gogv/gview"
	"github.com/gogv/gview/backend"
	"github.com/gogv/gview/memscene"
	"github.com/gogv/gview/render"
)

func main() {
	var (
		out     = flag.String("o", "graph.png", "output image (suffix selects png, bmp or jpg)")
		width   = flag.Int("w", 800, "output width in pixels")
		height  = flag.Int("h", 600, "output height in pixels")
		cfgPath = flag.String("config", "", "TOML viewer config file")
		verbose = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		gview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	cfg := gview.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = gview.LoadConfig(*cfgPath); err != nil {
			fatal(err)
		}
	}

	sc := demoScene()
	r := render.New(sc, render.WithConfig(cfg))

	surf := backend.NewImageSurface(*width, *height)
	if err := r.Open(surf); err != nil {
		fatal(err)
	}
	defer func() { _ = r.Close() }()

	if err := r.Render(*width, *height); err != nil {
		fatal(err)
	}
	if err := r.Screenshot(*out, *width, *height); err != nil {
		fatal(err)
	}
	fmt.Println("wrote", *out)
}

// demoScene builds a ring of nodes with a hub, shadowed nodes over plain
// edges.
func demoScene() *memscene.Scene {
	sc := memscene.New()

	bg := sc.AddGroup("background", gview.KindGraph, 0, false)
	bg.SetColors(color.White, color.White)

	edges := sc.AddGroup("edges", gview.KindEdge, 1, false)
	edges.SetColors(color.Gray{Y: 0x60}, color.Gray{Y: 0x60})

	nodes := sc.AddGroup("nodes", gview.KindNode, 2, true)
	nodes.SetColors(color.RGBA{R: 0x4d, G: 0x8f, B: 0xd1, A: 0xff}, color.Black)

	const n = 8
	nodes.AddNode("hub", 0, 0)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		id := fmt.Sprintf("n%d", i)
		nodes.AddNode(id, 4*math.Cos(a), 4*math.Sin(a))
		edges.AddEdge("e"+id, "hub", id)
	}

	sc.Open()
	return sc
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "gview-render:", err)
	os.Exit(1)
}
