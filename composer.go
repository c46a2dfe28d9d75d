package pbrmaps

import "fmt"

// DetailRecipe holds the sources of a detail map.
type DetailRecipe struct {
	Diffuse   *Image
	Normal    *Image
	Roughness Input
}

// MaskRecipe holds the sources of a mask map. DetailMask sets the size of
// textures synthesized from scalar inputs.
type MaskRecipe struct {
	Metallic         Input
	AmbientOcclusion *Image
	DetailMask       *Image
	Roughness        Input
}

// DetailMap packs a detail map:
//
//	R  desaturated diffuse
//	G  normal map green
//	B  smoothness (1 - roughness)
//	A  normal map red
func DetailMap(r DetailRecipe) (*Image, error) {
	if r.Diffuse == nil {
		return nil, fmt.Errorf("detail map: diffuse: %w", ErrMissingInput)
	}
	if r.Normal == nil {
		return nil, fmt.Errorf("detail map: normal: %w", ErrMissingInput)
	}
	w, h := r.Diffuse.W, r.Diffuse.H
	log := Logger().With("map", "detail")
	log.Debug("generating", "width", w, "height", h, "roughness", r.Roughness)

	roughness, err := resolveInput("detail map: roughness", r.Roughness, w, h)
	if err != nil {
		return nil, err
	}
	if err := SameSize(r.Diffuse, r.Normal, roughness); err != nil {
		return nil, fmt.Errorf("detail map: %w", err)
	}

	desaturated, err := Desaturate(r.Diffuse)
	if err != nil {
		return nil, err
	}
	smoothness, err := RoughnessToSmoothness(roughness)
	if err != nil {
		return nil, err
	}
	normalRed, err := ExtractChannel(r.Normal, Red)
	if err != nil {
		return nil, err
	}
	normalGreen, err := ExtractChannel(r.Normal, Green)
	if err != nil {
		return nil, err
	}
	out, err := ComposeChannels(desaturated, normalGreen, smoothness, normalRed)
	if err != nil {
		return nil, fmt.Errorf("detail map: %w", err)
	}
	log.Debug("generated")
	return out, nil
}

// MaskMap packs a mask map:
//
//	R  metallic
//	G  ambient occlusion
//	B  detail mask
//	A  roughness
func MaskMap(r MaskRecipe) (*Image, error) {
	if r.DetailMask == nil {
		return nil, fmt.Errorf("mask map: detail mask: %w", ErrMissingInput)
	}
	if r.AmbientOcclusion == nil {
		return nil, fmt.Errorf("mask map: ambient occlusion: %w", ErrMissingInput)
	}
	w, h := r.DetailMask.W, r.DetailMask.H
	log := Logger().With("map", "mask")
	log.Debug("generating", "width", w, "height", h, "metallic", r.Metallic, "roughness", r.Roughness)

	metallic, err := resolveInput("mask map: metallic", r.Metallic, w, h)
	if err != nil {
		return nil, err
	}
	roughness, err := resolveInput("mask map: roughness", r.Roughness, w, h)
	if err != nil {
		return nil, err
	}
	out, err := ComposeChannels(metallic, r.AmbientOcclusion, r.DetailMask, roughness)
	if err != nil {
		return nil, fmt.Errorf("mask map: %w", err)
	}
	log.Debug("generated")
	return out, nil
}
