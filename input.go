package pbrmaps

import "fmt"

// Input is a channel source that is either a texture (ImageInput) or a
// uniform value (ScalarInput).
type Input interface {
	// resolve returns the input as an image, synthesizing a w×h texture
	// for scalar inputs.
	resolve(w, h int) (*Image, error)
}

// ImageInput uses a texture as the channel source.
type ImageInput struct {
	Image *Image
}

func (in ImageInput) resolve(int, int) (*Image, error) {
	if in.Image == nil {
		return nil, ErrMissingInput
	}
	return in.Image, nil
}

func (in ImageInput) String() string {
	if in.Image == nil {
		return "image(nil)"
	}
	return fmt.Sprintf("image(%dx%d)", in.Image.W, in.Image.H)
}

// ScalarInput uses a uniform value in [0,1] as the channel source.
type ScalarInput float32

func (in ScalarInput) resolve(w, h int) (*Image, error) {
	return ConstantFill(float32(in), w, h)
}

func (in ScalarInput) String() string {
	return fmt.Sprintf("scalar(%g)", float32(in))
}

func resolveInput(name string, in Input, w, h int) (*Image, error) {
	if in == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingInput)
	}
	img, err := in.resolve(w, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}
