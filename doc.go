// Package tilesr provides tiled super-resolution inference for images of arbitrary size.
//
// A backend upscales fixed-size tiles; tilesr partitions the source image into overlapping
// tiles, runs the backend on each one and blends the results into a seamless output by
// averaging overlapping contributions. Input and output dimensions are bounded before any
// buffer is allocated, so peak memory depends on the configured limits, not on the request.
package tilesr
