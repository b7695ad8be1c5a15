// Package carve shrinks images horizontally by seam carving.
//
// Each iteration builds a Sobel gradient field over the red, green and blue
// planes, accumulates a bottom-up cost table, traces the cheapest vertical seam
// from the top row and cuts it out of the RGB buffer. Nothing is cached between
// iterations.
package carve
