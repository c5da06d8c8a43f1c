package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/section"
)

// Picture geometry. Monochrome pictures pack eight pixels per byte;
// color pictures pack two palette indices per byte.
const (
	MonoPictureWidth  = 96
	MonoPictureHeight = 63
	monoPictureBytes  = MonoPictureWidth * MonoPictureHeight / 8

	ColorPictureWidth  = 266
	ColorPictureHeight = 165
	colorPictureBytes  = ColorPictureWidth * ColorPictureHeight / 2
)

// PictureKind distinguishes the two picture payload layouts.
type PictureKind int

const (
	PictureMono PictureKind = iota
	PictureColor
)

// Picture is a typed view over a picture entry. Monochrome and color
// pictures share a type id and are told apart by payload size.
type Picture struct {
	*Entry
	kind PictureKind
}

// NewPicture creates a blank picture of the given kind.
func NewPicture(kind PictureKind) *Picture {
	e, _ := NewEntry(TypePicture)
	size := monoPictureBytes
	if kind == PictureColor {
		size = colorPictureBytes
	}
	setSizedPayload(e, make([]byte, size))
	return &Picture{Entry: e, kind: kind}
}

// AsPicture views e as a picture, inferring the kind from the payload
// size.
func AsPicture(e *Entry) (*Picture, error) {
	if e.TypeID() != TypePicture {
		return nil, fmt.Errorf("%w: %s is not a picture", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	switch len(sizedPayload(e)) {
	case monoPictureBytes:
		return &Picture{Entry: e, kind: PictureMono}, nil
	case colorPictureBytes:
		return &Picture{Entry: e, kind: PictureColor}, nil
	}
	return nil, fmt.Errorf("%w: picture payload is %d bytes, want %d or %d",
		errs.ErrLengthMismatch, len(sizedPayload(e)), monoPictureBytes, colorPictureBytes)
}

// Kind returns the picture's payload layout.
func (p *Picture) Kind() PictureKind { return p.kind }

// Width returns the pixel width.
func (p *Picture) Width() int {
	if p.kind == PictureColor {
		return ColorPictureWidth
	}
	return MonoPictureWidth
}

// Height returns the pixel height.
func (p *Picture) Height() int {
	if p.kind == PictureColor {
		return ColorPictureHeight
	}
	return MonoPictureHeight
}

// PixelData returns the raw pixel bytes. The slice aliases the entry
// data.
func (p *Picture) PixelData() []byte { return sizedPayload(p.Entry) }

func (p *Picture) checkCoords(row, col int) error {
	if row < 0 || row >= p.Height() || col < 0 || col >= p.Width() {
		return fmt.Errorf("%w: pixel (%d,%d) of %dx%d",
			errs.ErrSectionOutOfBounds, row, col, p.Height(), p.Width())
	}
	return nil
}

// BitAt reads a monochrome pixel, top-left origin.
func (p *Picture) BitAt(row, col int) (bool, error) {
	if p.kind != PictureMono {
		return false, fmt.Errorf("%w: not a monochrome picture", errs.ErrUnknownTypeID)
	}
	if err := p.checkCoords(row, col); err != nil {
		return false, err
	}
	b := p.PixelData()[row*MonoPictureWidth/8+col/8]
	return b&(0x80>>(col%8)) != 0, nil
}

// SetBitAt writes a monochrome pixel.
func (p *Picture) SetBitAt(row, col int, on bool) error {
	if p.kind != PictureMono {
		return fmt.Errorf("%w: not a monochrome picture", errs.ErrUnknownTypeID)
	}
	if err := p.checkCoords(row, col); err != nil {
		return err
	}
	idx := row*MonoPictureWidth/8 + col/8
	mask := byte(0x80 >> (col % 8))
	if on {
		p.PixelData()[idx] |= mask
	} else {
		p.PixelData()[idx] &^= mask
	}
	return nil
}

// paletteField locates the nibble holding a color pixel within the
// entry data. Even columns sit in the high nibble, odd in the low.
func paletteField(row, col int) section.Field[uint8] {
	bits := section.Bits{Lo: 0, Hi: 3}
	if col%2 == 0 {
		bits = section.Bits{Lo: 4, Hi: 7}
	}
	return section.NewField("palette", 2+(row*ColorPictureWidth+col)/2, 1, bits)
}

// PaletteAt reads a color pixel's palette index, 0 through 15.
func (p *Picture) PaletteAt(row, col int) (uint8, error) {
	if p.kind != PictureColor {
		return 0, fmt.Errorf("%w: not a color picture", errs.ErrUnknownTypeID)
	}
	if err := p.checkCoords(row, col); err != nil {
		return 0, err
	}
	return paletteField(row, col).Read(p.data)
}

// SetPaletteAt writes a color pixel's palette index.
func (p *Picture) SetPaletteAt(row, col int, index uint8) error {
	if p.kind != PictureColor {
		return fmt.Errorf("%w: not a color picture", errs.ErrUnknownTypeID)
	}
	if err := p.checkCoords(row, col); err != nil {
		return err
	}
	if index > 0x0F {
		return fmt.Errorf("%w: palette index %d", errs.ErrInvalidEnumValue, index)
	}
	return paletteField(row, col).Write(p.data, index)
}

// Image geometry. Rows are stored bottom-up, each padded to imageRowBytes.
const (
	ImageWidth  = 133
	ImageHeight = 83

	imageMagic    = 0x81
	imageRowBytes = ImageWidth*2 + 2
	imageBytes    = 1 + ImageHeight*imageRowBytes
)

// Image is a typed view over a full-color image entry. Pixels are
// 16-bit RGB565 values, two bytes each, little endian.
type Image struct {
	*Entry
}

// NewImage creates a black image.
func NewImage() *Image {
	e, _ := NewEntry(TypeImage)
	payload := make([]byte, imageBytes)
	payload[0] = imageMagic
	setSizedPayload(e, payload)
	return &Image{Entry: e}
}

// AsImage views e as an image. The payload must open with the image
// magic byte.
func AsImage(e *Entry) (*Image, error) {
	if e.TypeID() != TypeImage {
		return nil, fmt.Errorf("%w: %s is not an image", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	payload := sizedPayload(e)
	if len(payload) != imageBytes {
		return nil, fmt.Errorf("%w: image payload is %d bytes, want %d",
			errs.ErrLengthMismatch, len(payload), imageBytes)
	}
	if payload[0] != imageMagic {
		return nil, fmt.Errorf("%w: image magic 0x%02X, want 0x%02X",
			errs.ErrUnknownMagic, payload[0], imageMagic)
	}
	return &Image{Entry: e}, nil
}

// pixelOffset maps top-left coordinates onto the bottom-up storage.
func (im *Image) pixelOffset(row, col int) (int, error) {
	if row < 0 || row >= ImageHeight || col < 0 || col >= ImageWidth {
		return 0, fmt.Errorf("%w: pixel (%d,%d) of %dx%d",
			errs.ErrSectionOutOfBounds, row, col, ImageHeight, ImageWidth)
	}
	return 1 + (ImageHeight-1-row)*imageRowBytes + 2*col, nil
}

// At reads the pixel at the given row and column as 8-bit RGB.
func (im *Image) At(row, col int) (r, g, b uint8, err error) {
	off, err := im.pixelOffset(row, col)
	if err != nil {
		return 0, 0, 0, err
	}
	p := sizedPayload(im.Entry)[off : off+2]
	r = uint8(int(p[1]>>3) * 255 / 31)
	g = uint8((int(p[1]&7)<<3 | int(p[0]>>5)) * 255 / 63)
	b = uint8(int(p[0]&31) * 255 / 31)
	return r, g, b, nil
}

// SetAt writes the pixel at the given row and column, quantizing 8-bit
// RGB down to RGB565.
func (im *Image) SetAt(row, col int, r, g, b uint8) error {
	off, err := im.pixelOffset(row, col)
	if err != nil {
		return err
	}
	p := sizedPayload(im.Entry)[off : off+2]
	p[0] = byte(g/4&7)<<5 | b/8
	p[1] = r/8<<3 | g/4>>3
	return nil
}
