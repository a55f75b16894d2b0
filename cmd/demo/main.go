package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"strings"

	"github.com/blacktop/go-braimg"
)

func main() {
	if len(os.Args) > 1 {
		// If a file is provided, render it
		renderFile(os.Args[1])
	} else {
		// Otherwise, create a test pattern
		renderTestPattern()
	}
}

func renderFile(path string) {
	fmt.Printf("Rendering image: %s\n\n", path)

	// Simple one-liner to render a file
	if err := braimg.PrintFile(path); err != nil {
		log.Fatalf("Error rendering file: %v", err)
	}

	fmt.Println("\n\nUsing fluent API with custom settings:")

	img, err := braimg.Open(path)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}

	err = img.
		Width(braimg.FitWidth(80)).
		Dither(braimg.DitherAtkinson).
		Luma(braimg.LumaHSV).
		Print()
	if err != nil {
		log.Fatalf("Error rendering with fluent API: %v", err)
	}
}

func renderTestPattern() {
	fmt.Print("Creating test pattern...\n\n")

	img := createTestPattern()

	for _, mode := range []braimg.DitherMode{
		braimg.DitherNone,
		braimg.DitherFloydSteinberg,
		braimg.DitherStucki,
		braimg.DitherAtkinson,
		braimg.DitherBayer,
	} {
		fmt.Printf("\n=== Dither: %s ===\n", mode)
		if err := braimg.New(img).Width(40).Dither(mode).Print(); err != nil {
			fmt.Printf("Error with %s: %v\n", mode, err)
		}
		fmt.Print(strings.Repeat("-", 40) + "\n")
	}

	fmt.Println("\n=== Configuration Examples ===")

	for _, luma := range []braimg.LumaMode{braimg.LumaMaxChannel, braimg.LumaHSV, braimg.LumaNone} {
		fmt.Printf("\nLuma %s:\n", luma)
		if err := braimg.New(img).Width(40).Luma(luma).Print(); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	fmt.Println("\nLimited to 8 colors:")
	if err := braimg.New(img).Width(40).Colors(8).Print(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	fmt.Println("\nInverted for light backgrounds:")
	if err := braimg.New(img).Width(40).Invert(true).Background(false).Print(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func createTestPattern() image.Image {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Create a gradient pattern
	for y := range size {
		for x := range size {
			r := uint8((x * 255) / size)
			g := uint8((y * 255) / size)
			b := uint8(((x + y) * 255) / (2 * size))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	squares := []struct {
		rect image.Rectangle
		c    color.RGBA
	}{
		{image.Rect(20, 20, 60, 60), color.RGBA{255, 0, 0, 255}},
		{image.Rect(140, 20, 180, 60), color.RGBA{0, 255, 0, 255}},
		{image.Rect(20, 140, 60, 180), color.RGBA{0, 0, 255, 255}},
		{image.Rect(140, 140, 180, 180), color.RGBA{255, 255, 255, 255}},
	}
	for _, s := range squares {
		draw.Draw(img, s.rect, &image.Uniform{s.c}, image.Point{}, draw.Src)
	}

	// a transparent hole shows the black background
	hole := image.Rect(90, 90, 110, 110)
	draw.Draw(img, hole, image.Transparent, image.Point{}, draw.Src)

	return img
}
