/*
Package braimg renders images as colored Unicode braille text for 256-color terminals.

Every character cell covers a 2x4 block of pixels. The image is dithered to
black and white and each block becomes one braille pattern (U+2800-U+28FF),
so dot density carries brightness. Separately the image is shrunk to one
pixel per cell, stripped of its brightness and mapped to the xterm 256-color
palette, which sets the foreground color of the cell. Color escapes are only
written when the color changes.

# Quick Start

	// Render a file with default settings (160 columns max)
	out, err := braimg.RenderFile("image.png")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)

	// Fluent configuration
	img, _ := braimg.Open("image.png")
	err = img.
		Width(80).
		Dither(braimg.DitherAtkinson).
		Luma(braimg.LumaHSV).
		Print()

# Pipeline

  - Normalize scales the image down to at most 2*width pixels and pads it to a multiple of 2x4.
  - Ink dithers the luma of the image to the Mono palette.
  - Braillify packs each 2x4 block of ink into a braille code point.
  - Sample shrinks the image to one pixel per cell, normalizes luma and picks the nearest ANSI256 color.
  - Compose interleaves glyphs and color escapes.

The ink and color branches run concurrently. If any stage fails nothing is written.

# Output

	ESC[48;5;0m            black background (optional)
	ESC[38;5;<n>m          foreground color, only when it changes
	U+2800-U+28FF          one glyph per cell, rows end with \n
	ESC[0m                 reset
*/
package braimg
