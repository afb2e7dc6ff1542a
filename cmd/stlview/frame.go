package main

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-stl/engine/framing"
	"github.com/Carmen-Shannon/oxy-stl/engine/loader"
	"github.com/Carmen-Shannon/oxy-stl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-stl/engine/settings"
	"github.com/spf13/cobra"
)

func newFrameCommand() *cobra.Command {
	var (
		view   string
		offset float32
	)
	cmd := &cobra.Command{
		Use:   "frame <model.stl>",
		Short: "Print the camera placement for a named view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := framing.ParseView(view)
			if err != nil {
				return err
			}
			mesh, err := loader.NewLoader(loader.BackendTypeSTL).LoadFile(args[0])
			if err != nil {
				return err
			}
			vs := settings.ViewSettings{ViewOffset: offset}.Normalized()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(framing.Place(v, mesh.Bounds(), vs.ViewOffset))
		},
	}
	cmd.Flags().StringVar(&view, "view", framing.Isometric.String(), "named view: isometric, top, left, right or bottom")
	cmd.Flags().Float32Var(&offset, "offset", settings.DefaultViewOffset, "distance between the model and the camera")
	return cmd
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <model.stl>",
		Short: "Print triangle count and bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := loader.NewLoader(loader.BackendTypeSTL).LoadFile(args[0])
			if err != nil {
				return err
			}
			bb := mesh.Bounds()
			size := bb.Size()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Header: %s\n", mesh.Header())
			fmt.Fprintf(out, "Triangles: %d\n", mesh.TriangleCount())
			fmt.Fprintf(out, "Bounding box: %s .. %s\n", overlay.Vec(bb.Min), overlay.Vec(bb.Max))
			fmt.Fprintf(out, "Size: %s x %s x %s\n", overlay.Num(size.X()), overlay.Num(size.Y()), overlay.Num(size.Z()))
			fmt.Fprintf(out, "Surface area: %s\n", overlay.Num(mesh.SurfaceArea()))
			return nil
		},
	}
}
