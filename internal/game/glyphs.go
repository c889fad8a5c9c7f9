package game

// Glyphs is the engine's score font: 3x5 bitmaps, one per entry, rows top to
// bottom, 3 bits per row, top-left pixel in bit 14. Entries 0..9 are digits.
var Glyphs = []int32{
	0b111_101_101_101_111, // 0
	0b010_110_010_010_111, // 1
	0b111_001_111_100_111, // 2
	0b111_001_111_001_111, // 3
	0b101_101_111_001_001, // 4
	0b111_100_111_001_111, // 5
	0b111_100_111_101_111, // 6
	0b111_001_001_001_001, // 7
	0b111_101_111_101_111, // 8
	0b111_101_111_001_111, // 9
}

