package puzzle

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	// Decoders for the formats level pictures come in.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/abhisek/playarcade/internal/shuffle"
)

// ErrNoImage is returned by strategies that need picture bytes.
var ErrNoImage = errors.New("no image data")

// Source is a resolved level picture. Data is nil when the picture could
// not be loaded.
type Source struct {
	Ref  string
	Data []byte
}

// Strategy turns a picture into grid×grid tiles in canonical order, or
// reports why it cannot.
type Strategy interface {
	Kind() Kind
	Tiles(src Source, grid int) ([]Tile, error)
}

// DefaultChain tries real fragments first, then whole-image offsets, then
// plain numbered tiles.
var DefaultChain = []Strategy{SliceStrategy{}, OffsetStrategy{}, AbstractStrategy{}}

// Build runs the fallback chain and shuffles the first board it yields.
// AbstractStrategy never fails, so a chain ending with it always yields a
// board.
func Build(src Source, grid int, rnd shuffle.Source, chain ...Strategy) (*Layout, error) {
	if len(chain) == 0 {
		chain = DefaultChain
	}
	var errs []error
	for _, s := range chain {
		tiles, err := s.Tiles(src, grid)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Kind(), err))
			continue
		}
		return newLayout(grid, s.Kind(), src.Ref, tiles, rnd), nil
	}
	return nil, fmt.Errorf("no layout strategy succeeded: %w", errors.Join(errs...))
}

// SliceStrategy decodes the picture and cuts it into PNG fragments in
// row-major order.
type SliceStrategy struct{}

func (SliceStrategy) Kind() Kind { return KindSliced }

func (SliceStrategy) Tiles(src Source, grid int) ([]Tile, error) {
	if len(src.Data) == 0 {
		return nil, ErrNoImage
	}
	img, _, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	tw, th := b.Dx()/grid, b.Dy()/grid
	if tw == 0 || th == 0 {
		return nil, fmt.Errorf("image %dx%d too small for a %dx%d grid", b.Dx(), b.Dy(), grid, grid)
	}

	tiles := make([]Tile, 0, grid*grid)
	for i := 0; i < grid*grid; i++ {
		row, col := i/grid, i%grid
		rect := image.Rect(0, 0, tw, th)
		frag := image.NewRGBA(rect)
		draw.Draw(frag, rect, img, image.Pt(b.Min.X+col*tw, b.Min.Y+row*th), draw.Src)

		var buf bytes.Buffer
		if err := png.Encode(&buf, frag); err != nil {
			return nil, fmt.Errorf("encode tile %d: %w", i, err)
		}
		tiles = append(tiles, Tile{Canonical: i, Fragment: buf.Bytes()})
	}
	return tiles, nil
}

// OffsetStrategy keeps the whole picture and gives each tile the
// background offset that shows its part of it. It needs the picture to
// have loaded but not to be decodable.
type OffsetStrategy struct{}

func (OffsetStrategy) Kind() Kind { return KindOffset }

func (OffsetStrategy) Tiles(src Source, grid int) ([]Tile, error) {
	if len(src.Data) == 0 {
		return nil, ErrNoImage
	}
	tiles := make([]Tile, 0, grid*grid)
	for i := 0; i < grid*grid; i++ {
		tiles = append(tiles, Tile{Canonical: i, Offset: TileOffset(i, grid)})
	}
	return tiles, nil
}

// TileOffset is the percent offset of canonical tile i on a grid board.
func TileOffset(i, grid int) *Offset {
	if grid < 2 {
		return &Offset{}
	}
	span := float64(grid - 1)
	return &Offset{
		X: float64(i%grid) / span * 100,
		Y: float64(i/grid) / span * 100,
	}
}

// AbstractStrategy yields plain tiles that are still permutable and
// position-checkable.
type AbstractStrategy struct{}

func (AbstractStrategy) Kind() Kind { return KindAbstract }

func (AbstractStrategy) Tiles(_ Source, grid int) ([]Tile, error) {
	tiles := make([]Tile, 0, grid*grid)
	for i := 0; i < grid*grid; i++ {
		tiles = append(tiles, Tile{Canonical: i})
	}
	return tiles, nil
}
