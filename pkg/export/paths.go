package export

import "fmt"

// File suffixes appended to the prefix.
const (
	SceneSuffix   = "Scene.db"
	MeshesSuffix  = "Meshes.db"
	ShadersSuffix = "Shaders.db"
	FramesSuffix  = "Frames.db"
)

// Files holds the four output filenames of one prefix.
type Files struct {
	Scene   string
	Meshes  string
	Shaders string
	Frames  string
}

// Paths returns the output filenames for prefix.
func Paths(prefix string) Files {
	return Files{
		Scene:   prefix + SceneSuffix,
		Meshes:  prefix + MeshesSuffix,
		Shaders: prefix + ShadersSuffix,
		Frames:  prefix + FramesSuffix,
	}
}

// List returns the filenames in write order.
func (f Files) List() []string {
	return []string{f.Scene, f.Meshes, f.Shaders, f.Frames}
}

// ImageName is the image filename the renderer writes for frame.
func ImageName(prefix string, frame int) string {
	return fmt.Sprintf("%s%04d.bmp", prefix, frame)
}
