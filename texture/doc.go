// Package texture decodes cube images and owns the texture views render
// cores sample from.
//
// [DecodeCube] accepts any format registered with the image package (PNG,
// JPEG, BMP, TIFF and WebP are linked in) laid out as a strip or a cross of
// six square faces. [ViewProxy] holds at most one GPU view and replaces it
// in place when a new stream is supplied.
package texture
