// Command go-pbr generates PBR texture maps from a single source image.
//
// The command is a thin shell around the engine: it decodes the source,
// optionally loads a parameter preset, runs a bulk generation and
// encodes each resulting raster as a PNG next to the source. Everything
// interesting happens in the engine and below.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/texgen-ai/go-pbr/engine"
	"github.com/texgen-ai/go-pbr/params"
	"github.com/texgen-ai/go-pbr/util"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "Source image (PNG or JPEG)")
		outputDir  = flag.String("output", "maps", "Output directory for generated PNGs")
		presetPath = flag.String("preset", "", "Optional YAML parameter preset")
		mapsFlag   = flag.String("maps", "", "Comma-separated map names to generate (default: all)")
		maxDim     = flag.Int("max-dim", util.MaxSourceDimension, "Cap on the larger source dimension")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, err := util.LoadSourceFile(*inputPath, *maxDim)
	if err != nil {
		log.Fatalf("load source: %v", err)
	}
	b := src.Raster.Bounds()
	log.Printf("loaded %s (%dx%d, %d bytes on disk)", src.Name, b.Dx(), b.Dy(), src.Size)

	eng := engine.New(engine.Options{
		OnProgress: func(done, total int, t params.MapType, elapsed time.Duration) {
			log.Printf("[%3d%%] %-12s %s", done*100/total, t, elapsed.Round(time.Millisecond))
		},
	})
	eng.SetSource(src.Raster, src.Name)

	if *presetPath != "" {
		data, err := os.ReadFile(*presetPath)
		if err != nil {
			log.Fatalf("read preset: %v", err)
		}
		set, err := params.FromYaml(data)
		if err != nil {
			log.Fatalf("parse preset: %v", err)
		}
		eng.SetParams(set)
	}

	selected, err := selectMaps(*mapsFlag)
	if err != nil {
		log.Fatal(err)
	}

	if err := eng.GenerateMany(selected); err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	base := strings.TrimSuffix(src.Name, filepath.Ext(src.Name))
	written := 0
	for _, t := range selected {
		raster, ok := eng.Result(t)
		if !ok {
			log.Printf("skipping %s: generation failed", t)
			continue
		}
		outPath := filepath.Join(*outputDir, fmt.Sprintf("%s_%s.png", base, t))
		if err := writePNG(outPath, raster); err != nil {
			log.Printf("write %s: %v", outPath, err)
			continue
		}
		written++
	}
	log.Printf("wrote %d/%d maps to %s", written, len(selected), *outputDir)
}

// selectMaps parses the -maps flag into map types, defaulting to all.
func selectMaps(arg string) ([]params.MapType, error) {
	if arg == "" {
		return params.All(), nil
	}
	byLabel := make(map[string]params.MapType)
	for _, t := range params.All() {
		byLabel[t.Label()] = t
	}
	var out []params.MapType
	for _, name := range strings.Split(arg, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		t, ok := byLabel[name]
		if !ok {
			return nil, fmt.Errorf("unknown map type %q", name)
		}
		out = append(out, t)
	}
	return out, nil
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
