package cmd

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ldo/go0r/pkg/param"
	"github.com/ldo/go0r/pkg/plugin"
	"github.com/ldo/go0r/pkg/preset"
	"github.com/ldo/go0r/pkg/surface"
)

var (
	renderIn     []string
	renderOut    string
	renderParams []string
	renderPreset string
	renderTime   float64
	renderWidth  int
	renderHeight int
)

var renderCmd = &cobra.Command{
	Use:   "render <plugin>",
	Short: "Apply a plugin to PNG images for one frame",
	Long: `Render constructs the plugin at the input image's dimensions, applies
the given parameters, runs a single update at the given timestamp, and
writes the output PNG. Sources take no --in and need --width/--height;
mixers take two or three --in images.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, done, err := resolvePlugin(args[0])
		if err != nil {
			return err
		}
		defer done()

		if got, want := len(renderIn), p.Type().Inputs(); got != want {
			return fmt.Errorf("%s is a %s and takes %d input image(s), got %d",
				p.Name(), p.Type(), want, got)
		}

		inputs := make([]*surface.Surface, len(renderIn))
		width, height := renderWidth, renderHeight
		for i, path := range renderIn {
			img, err := readPNG(path)
			if err != nil {
				return err
			}
			inputs[i] = surface.FromRGBA(img)
			if i == 0 {
				width, height = inputs[i].Width, inputs[i].Height
			}
		}
		if width <= 0 || height <= 0 {
			return fmt.Errorf("source plugins need --width and --height")
		}

		inst, err := p.Construct(width, height)
		if err != nil {
			return err
		}
		defer inst.Destroy()

		if renderPreset != "" {
			if err := applyPreset(inst, renderPreset); err != nil {
				return err
			}
		}
		// --param flags override preset entries.
		values, err := parseParamFlags(p, renderParams)
		if err != nil {
			return err
		}
		if err := inst.Apply(values); err != nil {
			return err
		}

		out := surface.New(width, height)
		if err := inst.Update(renderTime, inputs, out); err != nil {
			return err
		}

		if err := writePNG(renderOut, out.RGBA()); err != nil {
			return err
		}
		log.Info().Str("plugin", p.Name()).Str("out", renderOut).
			Int("width", width).Int("height", height).Msg("rendered frame")
		return nil
	},
}

// parseParamFlags turns repeated name=value flags into typed values
// using the plugin's schema: bool "true"/"false", double "0.9",
// colour "r,g,b", position "x,y", string taken verbatim.
func parseParamFlags(p *plugin.Plugin, flags []string) (map[string]param.Value, error) {
	values := make(map[string]param.Value, len(flags))
	for _, f := range flags {
		name, raw, found := strings.Cut(f, "=")
		if !found {
			return nil, fmt.Errorf("--param %q: want name=value", f)
		}
		d, found := p.Param(name)
		if !found {
			return nil, fmt.Errorf("--param %q: plugin %s has no parameter %q", f, p.Name(), name)
		}
		v, err := parseValue(d.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("--param %q: %w", f, err)
		}
		values[name] = v
	}
	return values, nil
}

func parseValue(kind param.Kind, raw string) (param.Value, error) {
	switch kind {
	case param.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return param.Bool(b), nil
	case param.KindDouble:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return param.Double(f), nil
	case param.KindColour:
		parts, err := splitFloats(raw, 3)
		if err != nil {
			return nil, err
		}
		return param.Colour{R: float32(parts[0]), G: float32(parts[1]), B: float32(parts[2])}, nil
	case param.KindPosition:
		parts, err := splitFloats(raw, 2)
		if err != nil {
			return nil, err
		}
		return param.Position{X: parts[0], Y: parts[1]}, nil
	case param.KindString:
		return param.String(raw), nil
	}
	return nil, fmt.Errorf("unsupported parameter kind %s", kind)
}

func splitFloats(raw string, n int) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func applyPreset(inst *plugin.Instance, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	pre, err := preset.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if pre.Plugin != "" && pre.Plugin != inst.Plugin().Name() {
		log.Warn().Str("preset", pre.Plugin).Str("plugin", inst.Plugin().Name()).
			Msg("preset was saved for a different plugin")
	}
	return pre.Apply(inst)
}

func readPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rgba, isRGBA := img.(*image.RGBA); isRGBA {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	renderCmd.Flags().StringArrayVar(&renderIn, "in", nil, "input PNG (repeat for mixers)")
	renderCmd.Flags().StringVar(&renderOut, "out", "out.png", "output PNG path")
	renderCmd.Flags().StringArrayVar(&renderParams, "param", nil, "parameter as name=value (repeatable)")
	renderCmd.Flags().StringVar(&renderPreset, "preset", "", "YAML preset file applied before --param")
	renderCmd.Flags().Float64Var(&renderTime, "time", 0, "frame timestamp in seconds")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "frame width for source plugins")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "frame height for source plugins")
	rootCmd.AddCommand(renderCmd)
}
