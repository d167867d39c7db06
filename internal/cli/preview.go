package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zradlicz/pcb-dataset-generator/pkg/board"
	"github.com/zradlicz/pcb-dataset-generator/pkg/netlist"
	"github.com/zradlicz/pcb-dataset-generator/pkg/pipeline"
	"github.com/zradlicz/pcb-dataset-generator/pkg/preview"
)

// previewCommand creates the preview command for rendering saved placements.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		configPath string
		output     string
		netsPath   string
		labels     bool
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "preview [placements.json]",
		Short: "Render an SVG preview from a saved placements file",
		Long: `Render an SVG preview from a saved placements file.

The preview command takes a placements.json file (produced by 'generate'
or 'batch') and renders it to SVG. Board dimensions come from the
configuration, so pass the same config the placements were generated
with. A nets.json file can be overlaid as routed traces.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if scale > 0 {
				cfg.Output.PixelsPerMM = scale
			}
			if cmd.Flags().Changed("labels") {
				cfg.Output.Labels = labels
			}
			return c.runPreview(cfg.PlacementConfig().Board, cfg.Output.PixelsPerMM, cfg.Output.Labels, args[0], netsPath, output)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input with .svg extension)")
	cmd.Flags().StringVar(&netsPath, "nets", "", "nets.json file to overlay as traces")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw reference designators")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per millimeter")

	return cmd
}

// runPreview loads the placements and renders them.
func (c *CLI) runPreview(b board.Board, pixelsPerMM float64, labels bool, input, netsPath, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load placements %s: %w", input, err)
	}
	var payload pipeline.PlacementPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse placements %s: %w", input, err)
	}

	opts := []preview.Option{preview.WithScale(pixelsPerMM)}
	if labels {
		opts = append(opts, preview.WithLabels())
	}
	if netsPath != "" {
		netData, err := os.ReadFile(netsPath)
		if err != nil {
			return fmt.Errorf("load nets %s: %w", netsPath, err)
		}
		var nets []netlist.Net
		if err := json.Unmarshal(netData, &nets); err != nil {
			return fmt.Errorf("parse nets %s: %w", netsPath, err)
		}
		opts = append(opts, preview.WithNets(nets))
	}

	svg := preview.RenderSVG(b, payload.Placements, opts...)

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".svg"
	}
	if err := os.WriteFile(output, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %d placements", len(payload.Placements))
	printFile(output)
	return nil
}
