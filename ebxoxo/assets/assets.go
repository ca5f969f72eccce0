package assets

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pr1vateer/libretictactoe/xoxo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// markPadding is the gap between a mark and its cell border.
const markPadding = 24

// Init builds the mark images and font faces. It must be called from the
// game loop.
func Init() error {
	for _, f := range []func() error{
		initImages,
		initFonts,
	} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

func initImages() error {
	for _, v := range []struct {
		draw func(*ebiten.Image)
		img  **ebiten.Image
	}{
		{drawCross, &Cross},
		{drawCircle, &Circle},
	} {
		img := ebiten.NewImage(xoxo.CellSize, xoxo.CellSize)
		v.draw(img)
		*v.img = img
	}
	return nil
}

func drawCross(img *ebiten.Image) {
	const lo, hi = markPadding, xoxo.CellSize - markPadding
	vector.StrokeLine(img, lo, lo, hi, hi, markWidth, CrossColor, true)
	vector.StrokeLine(img, lo, hi, hi, lo, markWidth, CrossColor, true)
}

func drawCircle(img *ebiten.Image) {
	const c = xoxo.CellSize / 2
	vector.StrokeCircle(img, c, c, c-markPadding, markWidth, CircleColor, true)
}

func initFonts() error {
	ff, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return err
	}
	for _, v := range []struct {
		size float64
		face *font.Face
	}{
		{16, &Bold16},
		{48, &Bold48},
	} {
		var err error
		if *v.face, err = opentype.NewFace(ff, &opentype.FaceOptions{
			Size:    v.size,
			DPI:     72,
			Hinting: font.HintingFull,
		}); err != nil {
			return err
		}
	}
	return nil
}

const markWidth = 10

var (
	Background  = color.White
	GridColor   = color.Black
	TextColor   = color.Black
	CrossColor  = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	CircleColor = color.RGBA{0x30, 0x50, 0xd0, 0xff}
)

var (
	Bold16 font.Face
	Bold48 font.Face
	Cross  *ebiten.Image
	Circle *ebiten.Image
)
