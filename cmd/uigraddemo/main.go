// Command uigraddemo renders a UI gradient on the CPU and prints the axis
// data the shader would receive.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/uigrad"
)

func main() {
	var (
		width    = flag.Int("width", 320, "element width")
		height   = flag.Int("height", 120, "element height")
		rotation = flag.Float64("rotation", 30, "gradient rotation in degrees")
		offsetX  = flag.Float64("offset-x", 0, "gradient center offset along x, in [-0.5, 0.5]")
		offsetY  = flag.Float64("offset-y", 0, "gradient center offset along y, in [-0.5, 0.5]")
		from     = flag.String("from", "#1e3c72", "start color")
		to       = flag.String("to", "#f7797d", "end color")
		output   = flag.String("output", "gradient.png", "output file")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		uigrad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	base, err := uigrad.NewUIMaterial("UI/Default")
	if err != nil {
		log.Fatalf("Failed to build material: %v", err)
	}

	tex := uigrad.NewRamp().
		AddColorStop(0, uigrad.Hex(*from)).
		AddColorStop(1, uigrad.Hex(*to)).
		Bake(uigrad.DefaultRampWidth)

	g := uigrad.NewGradient()
	defer g.Close()
	g.SetRotation(*rotation)
	g.SetOffset(uigrad.Pt(*offsetX, *offsetY))
	g.SetTexture(tex)

	variant := uigrad.AcquireVariant(base, gputypes.CullModeBack, gputypes.CompareFunctionLessEqual, false)
	defer uigrad.ReleaseVariant(variant)

	mat := g.ModifyMaterial(variant)
	rect := uigrad.NewRect(0, 0, float64(*width), float64(*height))
	g.Update(rect, uigrad.Point{})

	axis := g.Axis()
	data, _ := mat.Vector(uigrad.PropAxisData)
	log.Printf("material %s keywords %v", mat, mat.Keywords())
	log.Printf("axis: length=%.3f rotation=%.3f slope=%.6g intercept=%.6g", axis.Length, axis.Rotation, axis.AxisSlope, axis.AxisIntercept)
	log.Printf("_AxisData = %v", data)

	img := render(rect, g, tex)
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Gradient saved to %s (%dx%d)\n", *output, *width, *height)
}

// render evaluates the gradient at every pixel center and looks the result
// up in the baked ramp, as the fragment shader does.
func render(rect uigrad.Rect, g *uigrad.Gradient, tex *uigrad.RampTexture) *image.NRGBA {
	w, h := int(rect.Width()), int(rect.Height())
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := uigrad.Pt(float64(x)+0.5, float64(y)+0.5)
			f := uigrad.GradientFactor(rect, g.Offset(), g.Rotation(), p)
			img.Set(x, y, tex.Texel(int(f*float64(tex.Width()))).Color())
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
