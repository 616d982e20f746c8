package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/twpayne/go-proximity"
	"github.com/twpayne/go-proximity/internal/config"
)

// A gridDocument is a small grid described in YAML.
type gridDocument struct {
	OriginX    float64     `yaml:"origin_x"`
	OriginY    float64     `yaml:"origin_y"`
	PixelSizeX float64     `yaml:"pixel_size_x"`
	PixelSizeY float64     `yaml:"pixel_size_y"`
	Target     *float64    `yaml:"target"`
	Rows       [][]float64 `yaml:"rows"`
}

func readGridDocument(r io.Reader) (*gridDocument, error) {
	var doc gridDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, eris.Wrap(err, "decode grid document")
	}
	return &doc, nil
}

func newRootCmd() *cobra.Command {
	var (
		target    string
		strategy  string
		scaleMode string
	)

	cmd := &cobra.Command{
		Use:   "proximity-example [grid.yaml]",
		Short: "Print the distance in pixels from every cell to the nearest target cell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.InitLogger(cfg.Log); err != nil {
				return err
			}
			defer func() { _ = zap.L().Sync() }()

			if strategy != "" {
				cfg.Proximity.Strategy = strategy
			}
			if scaleMode != "" {
				cfg.Proximity.ScaleMode = scaleMode
			}
			options, err := cfg.Proximity.Options()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return eris.Wrap(err, "open grid document")
				}
				defer f.Close()
				in = f
			}
			doc, err := readGridDocument(in)
			if err != nil {
				return err
			}

			if target != "" {
				value, err := strconv.ParseFloat(target, 64)
				if err != nil {
					return eris.Wrap(err, "parse target")
				}
				doc.Target = &value
			}
			if doc.Target == nil {
				return eris.New("no target value")
			}

			values, err := proximity.NewValueGrid(doc.Rows)
			if err != nil {
				return err
			}
			grid := proximity.Grid{
				OriginX:    doc.OriginX,
				OriginY:    doc.OriginY,
				PixelSizeX: doc.PixelSizeX,
				PixelSizeY: doc.PixelSizeY,
				Height:     values.Height,
				Width:      values.Width,
			}

			p, err := proximity.New(options...)
			if err != nil {
				return err
			}
			field, err := p.Compute(cmd.Context(), grid, values, *doc.Target)
			if err != nil {
				return err
			}
			return printField(cmd.OutOrStdout(), field)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target value, overrides the document")
	cmd.Flags().StringVar(&strategy, "strategy", "", "scheduling strategy (sequential, targets, rows)")
	cmd.Flags().StringVar(&scaleMode, "scale-mode", "", "scale mode (geometric_mean, diagonal)")

	return cmd
}

func printField(w io.Writer, field *proximity.Field) error {
	for _, row := range field.Rows() {
		fields := make([]string, len(row))
		for i, value := range row {
			fields[i] = strconv.FormatFloat(value, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
