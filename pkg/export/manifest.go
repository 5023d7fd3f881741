package export

import (
	"strconv"

	"github.com/matzehuels/rtexport/pkg/markup"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// WriteManifest writes the scene file: the background colour and references
// to the shader, mesh and frame files. The references are written as given,
// relative to the directory the renderer runs in.
func WriteManifest(w *markup.Writer, files Files, background scene.RGB) {
	w.Tag("background",
		markup.String("r", shortFloat(background[0])),
		markup.String("g", shortFloat(background[1])),
		markup.String("b", shortFloat(background[2])))
	w.Printf("<shaderdata=\"%s\">\n", files.Shaders)
	w.Printf("<meshdata=\"%s\">\n", files.Meshes)
	w.Printf("<framedata=\"%s\">\n", files.Frames)
}

func shortFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
