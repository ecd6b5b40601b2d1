package domain

// Grid is a decoded raster ready to lay over a map: the pixel data
// re-encoded as an embeddable PNG data URI plus the geographic extent
// read from its georeference.
type Grid struct {
	Bounds   Bounds
	Width    int
	Height   int
	ImageURI string
}
