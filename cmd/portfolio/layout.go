package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/orbit"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the card slots of a layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		kindName, _ := cmd.Flags().GetString("kind")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		kind := cfg.Layout
		if kindName != "" {
			var err error
			if kind, err = orbit.ParseLayoutKind(kindName); err != nil {
				return err
			}
		}
		if count < 0 {
			return fmt.Errorf("count must not be negative, got %d", count)
		}
		slots := orbit.Layout(kind, count, cfg.Radius)
		if asYAML {
			return writeLayoutYAML(cmd.OutOrStdout(), slots)
		}
		return writeLayout(cmd.OutOrStdout(), kind, slots)
	},
}

func init() {
	layoutCmd.Flags().Int("count", 12, "number of cards")
	layoutCmd.Flags().Float64("radius", 0, "layout radius in world units")
	layoutCmd.Flags().String("kind", "", "ring or sphere")
	layoutCmd.Flags().Bool("yaml", false, "print YAML instead of a table")
}

func writeLayout(w io.Writer, kind orbit.LayoutKind, slots []orbit.LayoutSlot) error {
	if _, err := fmt.Fprintf(w, "%s, %d slots\n", kind, len(slots)); err != nil {
		return err
	}
	fmt.Fprintf(w, "%5s %10s %10s %10s %8s\n", "index", "x", "y", "z", "yaw°")
	for _, s := range slots {
		fmt.Fprintf(w, "%5d %10.2f %10.2f %10.2f %8.1f\n",
			s.Index, s.Position.X, s.Position.Y, s.Position.Z, s.Yaw*180/math.Pi)
	}
	return nil
}

type slotRecord struct {
	Index int     `yaml:"index"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
}

func writeLayoutYAML(w io.Writer, slots []orbit.LayoutSlot) error {
	records := make([]slotRecord, len(slots))
	for i, s := range slots {
		records[i] = slotRecord{Index: s.Index, X: s.Position.X, Y: s.Position.Y, Z: s.Position.Z, Yaw: s.Yaw}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}
