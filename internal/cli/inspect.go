package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/export"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// inspectCommand creates the inspect command, which lists the objects of a
// scene and whether an export with the given layers includes them.
func (c *CLI) inspectCommand() *cobra.Command {
	var layers string

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "List scene objects and their visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := applyLayers(config.Default(), layers)
			if err != nil {
				return err
			}
			host, err := loadScene(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			return printInspect(host, cfg.Layers)
		},
	}

	cmd.Flags().StringVarP(&layers, "layers", "l", "all", "visible layers: comma-separated indexes 0-19, all or none")

	return cmd
}

func printInspect(host *scene.Snapshot, mask scene.LayerMask) error {
	objs, err := host.Objects()
	if err != nil {
		return err
	}
	mats, _ := host.Materials()
	start, end, _ := host.FrameRange()
	cur, _ := host.CurrentFrame()
	w, h, _ := host.Resolution()

	counts, err := export.Walker{Host: host, Layers: mask}.Count()
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Scene"))
	printKeyValue("Frames", fmt.Sprintf("%d-%d (current %d)", start, end, cur))
	printKeyValue("Resolution", fmt.Sprintf("%dx%d", w, h))
	printKeyValue("Materials", fmt.Sprintf("%d", len(mats)))
	printKeyValue("Layers", mask.String())
	printNewline()
	fmt.Println(inspectTable(objs, mask))
	printNewline()
	printDetail("%d meshes · %d cameras · %d lamps exported, %d hidden",
		counts.Meshes, counts.Cameras, counts.Lamps, counts.Hidden)
	return nil
}

// inspectTable renders one row per object. Hidden objects are dimmed.
func inspectTable(objs []*scene.Object, mask scene.LayerMask) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(objs))
	for i, o := range objs {
		parent := "—"
		if o.Parent != nil {
			parent = o.Parent.Name
		}
		visible := ""
		if mask.Visible(o.Layers) {
			visible = iconSuccess
		}
		rows[i] = []string{o.Name, o.Kind.String(), formatLayers(o.Layers), parent, visible, objectDetail(o)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Object", "Kind", "Layers", "Parent", "Export", "Data").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(objs) || !mask.Visible(objs[row].Layers) {
				return base.Foreground(colorDim)
			}
			if col == 4 {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}

func formatLayers(bits uint32) string {
	layers := scene.LayerMask(bits).Layers()
	if len(layers) == 0 {
		return "—"
	}
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ",")
}

func objectDetail(o *scene.Object) string {
	switch {
	case o.Mesh != nil:
		return fmt.Sprintf("%d verts, %d faces", len(o.Mesh.Verts), len(o.Mesh.Faces))
	case o.Camera != nil:
		return fmt.Sprintf("%s, %gmm, fov %.1f°", o.Camera.Projection.Tag(), o.Camera.Lens, o.Camera.FieldOfView())
	case o.Lamp != nil:
		return o.Lamp.Type
	}
	return ""
}
