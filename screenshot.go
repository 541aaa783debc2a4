package main

import (
	"bytes"
	"image"
	"image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"
)

// clipboardReady is false when clipboard.Init failed (headless session,
// missing display server); screenshots are then silently disabled.
var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, screenshots disabled: %v", err)
		return
	}
	clipboardReady = true
}

// captureToClipboard copies the rendered frame to the system clipboard as a
// PNG, so a parent can grab whatever got drawn. Called from Draw after the
// frame is complete.
func captureToClipboard(screen *ebiten.Image) {
	if !clipboardReady {
		return
	}
	b := screen.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pix)
	img := &image.RGBA{Pix: pix, Stride: 4 * b.Dx(), Rect: image.Rect(0, 0, b.Dx(), b.Dy())}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("screenshot encode failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
}
