// Package render rasterizes node labels onto a PNG canvas.
//
// # Overview
//
// A [Renderer] paints a solid background, optional edge segments in a
// neutral gray, and one text label per node. Each label is centred on its
// pixel position by offsetting half of its measured width and height.
// Labels flagged Bold use the bold face; all others use the light face.
//
//	light, _ := fonts.Load("", fonts.Light, 13)
//	bold, _ := fonts.Load("", fonts.Bold, 13)
//	r := render.New(render.WithFaces(light, bold))
//	err := r.RenderFile("out.png", 2000, 1600, labels, nil)
//
// Drawing and PNG encoding use github.com/fogleman/gg.
//
// [RenderFile] writes through a temporary file and renames it into place,
// so an interrupted or failed render leaves no partial output.
package render
