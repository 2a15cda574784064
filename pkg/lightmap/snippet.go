package lightmap

import (
	"image"

	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

// Snippet is a face with its two finished lightmap images, both of the
// face's outer size. Snippets are placed on atlases and turned into meshes.
type Snippet struct {
	Face       geometry.Face
	Visibility *BorderedImage // direct sun visibility, not cosine weighted
	Ambient    *BorderedImage // sky, emission and indirect light
}

// Size is the outer image size
func (s Snippet) Size() image.Point {
	return s.Visibility.OuterSize()
}

// PackSnippets packs the snippets' outer images on one atlas
func PackSnippets(snippets []Snippet) (int, []image.Point, error) {
	sizes := make([]image.Point, len(snippets))
	for i, s := range snippets {
		sizes[i] = s.Size()
	}
	return Pack(sizes)
}

// Atlases renders the visibility and ambient atlases for packed snippets
func Atlases(snippets []Snippet, atlasSize int, offsets []image.Point) (visibility, ambient *image.RGBA) {
	vis := make([]image.Image, len(snippets))
	amb := make([]image.Image, len(snippets))
	for i, s := range snippets {
		vis[i] = s.Visibility.ToRGBA()
		amb[i] = s.Ambient.ToRGBA()
	}
	return CopyToAtlas(atlasSize, vis, offsets), CopyToAtlas(atlasSize, amb, offsets)
}
