// Package matrix maps resistor bands onto a chained, serpentine-wired LED matrix.
//
// The LEDs form one chain that runs left to right on even rows and right to
// left on odd rows:
//
//	row 0:   0 ->  1 ->  2 ->  3 ->  4
//	row 1:   9 <-  8 <-  7 <-  6 <-  5
//	row 2:  10 -> 11 -> 12 -> 13 -> 14
//	...
package matrix

// Serpentine returns the grid position of the i-th LED in the chain.
func Serpentine(i, width int) (row, col int) {
	row = i / width
	col = i % width
	if row%2 == 1 {
		col = width - 1 - col
	}
	return row, col
}

// Index returns the chain index of the LED at row, col. It is the inverse of Serpentine.
func Index(row, col, width int) int {
	if row%2 == 1 {
		col = width - 1 - col
	}
	return row*width + col
}
