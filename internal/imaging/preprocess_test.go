package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPreprocess_BlankImage(t *testing.T) {
	img := createInMemoryImage(64, 64, color.White)

	mask, err := Preprocess(img, DefaultPreprocessOptions())
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if mask.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Errorf("mask bounds = %v, want %v", mask.Bounds(), image.Rect(0, 0, 64, 64))
	}
	for i, v := range mask.Pix {
		if v != 0 {
			t.Fatalf("blank image produced foreground at index %d", i)
		}
	}
}

func TestPreprocess_Outline(t *testing.T) {
	img := createInMemoryImage(80, 80, color.White)
	drawRectOutline(img, image.Rect(20, 20, 60, 60), 3)

	mask, err := Preprocess(img, DefaultPreprocessOptions())
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"left stroke", 21, 40, 255},
		{"top stroke", 40, 21, 255},
		{"corner", 21, 21, 255},
		{"interior", 40, 40, 0},
		{"far background", 2, 2, 0},
		{"background below", 40, 75, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mask.GrayAt(tt.x, tt.y).Y; got != tt.want {
				t.Errorf("mask(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}

	for i, v := range mask.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("mask value %d at index %d is not binary", v, i)
		}
	}
}

func TestPreprocess_ClosingBridgesGaps(t *testing.T) {
	img := createInMemoryImage(80, 40, color.White)
	black := color.RGBA{0, 0, 0, 255}
	// Two strokes with a 4 pixel gap between them
	for y := 18; y < 21; y++ {
		for x := 10; x < 38; x++ {
			img.Set(x, y, black)
		}
		for x := 42; x < 70; x++ {
			img.Set(x, y, black)
		}
	}

	mask, err := Preprocess(img, DefaultPreprocessOptions())
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if got := mask.GrayAt(40, 19).Y; got != 255 {
		t.Errorf("gap pixel = %d, want 255 after closing", got)
	}
}

func TestPreprocess_NoMorphology(t *testing.T) {
	img := createInMemoryImage(40, 40, color.White)
	drawRectOutline(img, image.Rect(10, 10, 30, 30), 2)

	opts := DefaultPreprocessOptions()
	opts.MorphRadius = 0

	mask, err := Preprocess(img, opts)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if got := mask.GrayAt(20, 20).Y; got != 0 {
		t.Errorf("interior = %d, want 0", got)
	}
	if got := mask.GrayAt(10, 20).Y; got != 255 {
		t.Errorf("stroke = %d, want 255", got)
	}
}

func TestPreprocess_EmptyImage(t *testing.T) {
	_, err := Preprocess(image.NewRGBA(image.Rectangle{}), DefaultPreprocessOptions())
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestPreprocessOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*PreprocessOptions)
		wantErr bool
	}{
		{"defaults", func(*PreprocessOptions) {}, false},
		{"even block size", func(o *PreprocessOptions) { o.BlockSize = 10 }, true},
		{"block size too small", func(o *PreprocessOptions) { o.BlockSize = 1 }, true},
		{"negative radius", func(o *PreprocessOptions) { o.MorphRadius = -1 }, true},
		{"negative close iterations", func(o *PreprocessOptions) { o.CloseIterations = -1 }, true},
		{"negative dilate iterations", func(o *PreprocessOptions) { o.DilateIterations = -2 }, true},
		{"zero iterations", func(o *PreprocessOptions) { o.CloseIterations, o.DilateIterations = 0, 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultPreprocessOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGaussianKernel_Normalized(t *testing.T) {
	for _, size := range []int{3, 11, 21} {
		k := gaussianKernel(size)
		if k.MaxX() != size || k.MaxY() != size {
			t.Errorf("size %d: kernel is %dx%d", size, k.MaxX(), k.MaxY())
		}
		var sum float64
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				sum += k.At(x, y)
			}
		}
		if sum < 0.999999 || sum > 1.000001 {
			t.Errorf("size %d: kernel sum = %v, want 1", size, sum)
		}
		c := size / 2
		if k.At(c, c) <= k.At(0, 0) {
			t.Errorf("size %d: centre weight %v should exceed corner weight %v", size, k.At(c, c), k.At(0, 0))
		}
	}
}
