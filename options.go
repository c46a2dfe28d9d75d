package pbrmaps

type Options struct {
	// Directory the generated maps are written to. Created when missing.
	OutputDir string
	// Base file names, without extension.
	DetailMapName string
	MaskMapName   string
}

func DefaultOptions() Options {
	return Options{
		OutputDir:     "Assets/Materials/Brick",
		DetailMapName: "detail_map",
		MaskMapName:   "mask_map",
	}
}

// WithDefaults fills empty fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.OutputDir == "" {
		o.OutputDir = def.OutputDir
	}
	if o.DetailMapName == "" {
		o.DetailMapName = def.DetailMapName
	}
	if o.MaskMapName == "" {
		o.MaskMapName = def.MaskMapName
	}
	return o
}
