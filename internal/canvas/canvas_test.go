package canvas

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNew_ZeroFilled(t *testing.T) {
	c := New(4, 3)
	test.That(t, c.Width(), test.ShouldEqual, 4)
	test.That(t, c.Height(), test.ShouldEqual, 3)
	test.That(t, c.Len(), test.ShouldEqual, 12)
	for px := range c.All() {
		test.That(t, px, test.ShouldResemble, RGB{})
	}
}

func TestNew_InvalidDimensionsPanics(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d, %d): expected panic", dims[0], dims[1])
				}
			}()
			New(dims[0], dims[1])
		}()
	}
}

func TestCheckSize(t *testing.T) {
	test.That(t, CheckSize(1920, 1080), test.ShouldBeNil)
	for _, dims := range [][2]int{{0, 1}, {1, -1}, {math.MaxInt, 2}, {math.MaxInt / 2, math.MaxInt / 2}} {
		err := CheckSize(dims[0], dims[1])
		test.That(t, errors.Is(err, ErrInvalidSize), test.ShouldBeTrue)
	}
}

func TestNew_OverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(MaxInt, 2): expected panic")
		}
	}()
	New(math.MaxInt, 2)
}

func TestGet_Bounds(t *testing.T) {
	c := New(3, 2)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			_, ok := c.Get(row, col)
			test.That(t, ok, test.ShouldBeTrue)
		}
	}

	outside := [][2]int{{2, 0}, {0, 3}, {-1, 0}, {0, -1}, {1, 3}, {5, 5}}
	for _, p := range outside {
		_, ok := c.Get(p[0], p[1])
		if ok {
			t.Errorf("Get(%d, %d): expected absent", p[0], p[1])
		}
		_, ok = c.GetMut(p[0], p[1])
		if ok {
			t.Errorf("GetMut(%d, %d): expected absent", p[0], p[1])
		}
	}
}

func TestGetMut_WritesInPlace(t *testing.T) {
	c := New(2, 2)
	p, ok := c.GetMut(1, 0)
	test.That(t, ok, test.ShouldBeTrue)
	*p = RGB{1, 2, 3}

	got, _ := c.Get(1, 0)
	test.That(t, got, test.ShouldResemble, RGB{1, 2, 3})
	// row-major: (1,0) is index 1*width+0
	test.That(t, c.Pixels()[2], test.ShouldResemble, RGB{1, 2, 3})
}

func TestSet_OutOfBounds(t *testing.T) {
	c := New(2, 2)
	err := c.Set(2, 0, RGB{9, 9, 9})
	test.That(t, errors.Is(err, ErrOutOfBounds), test.ShouldBeTrue)
	test.That(t, c.Set(1, 1, RGB{9, 9, 9}), test.ShouldBeNil)
}

func TestAll_Restartable(t *testing.T) {
	c := New(3, 1)
	for i := range c.Pixels() {
		c.Pixels()[i] = RGB{uint8(i), 0, 0}
	}

	collect := func() []RGB {
		var out []RGB
		for px := range c.All() {
			out = append(out, px)
		}
		return out
	}
	first := collect()
	second := collect()
	test.That(t, first, test.ShouldResemble, second)
	test.That(t, first, test.ShouldHaveLength, 3)
	test.That(t, first[2].R, test.ShouldEqual, uint8(2))
}

func TestAll_EarlyBreak(t *testing.T) {
	c := New(10, 10)
	n := 0
	for range c.All() {
		n++
		if n == 5 {
			break
		}
	}
	test.That(t, n, test.ShouldEqual, 5)
}

func TestEqual(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	test.That(t, a.Equal(b), test.ShouldBeTrue)

	b.Set(0, 1, RGB{G: 1})
	test.That(t, a.Equal(b), test.ShouldBeFalse)
	test.That(t, a.Equal(New(4, 1)), test.ShouldBeFalse)
	test.That(t, a.Equal(nil), test.ShouldBeFalse)
}

func TestImageInterface(t *testing.T) {
	c := New(2, 1)
	c.Set(0, 1, RGB{200, 100, 50})

	var img image.Image = c
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 1))

	r, g, b, a := img.At(1, 0).RGBA()
	test.That(t, r>>8, test.ShouldEqual, uint32(200))
	test.That(t, g>>8, test.ShouldEqual, uint32(100))
	test.That(t, b>>8, test.ShouldEqual, uint32(50))
	test.That(t, a, test.ShouldEqual, uint32(0xffff))
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.SetNRGBA(12, 21, color.NRGBA{R: 7, G: 8, B: 9, A: 255})

	c := FromImage(src)
	test.That(t, c.Width(), test.ShouldEqual, 3)
	test.That(t, c.Height(), test.ShouldEqual, 2)
	px, ok := c.Get(1, 2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, px, test.ShouldResemble, RGB{7, 8, 9})
}
