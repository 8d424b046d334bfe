// Package imaging provides the raster operations used by the map tiler.
//
// This package loads the source illustration, reduces it to a binary edge
// mask, cuts padded tiles out of it with a transparency mask and draws the
// optional debug overlay. All operations work with standard Go image.Image
// types and use a coordinate system where (0,0) is at the top-left corner,
// X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive and Max is exclusive (image.Rectangle)
//
// # Binary Masks
//
// Masks are *image.Gray values that contain only 0 (background) and 255
// (foreground). Preprocess produces masks whose foreground is the ink of the
// illustration: outlines, borders and other dark strokes.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Missing or undecodable image files
//   - Empty images or empty crop rectangles
//   - Invalid preprocessing options (even block sizes, negative iterations)
//   - File I/O errors during image output
package imaging
