package valueobject

import (
	"maps"
	"strings"
)

const (
	OptionFormat              = "format"
	OptionJPEGQuality         = "jpeg_quality"
	OptionPNGCompressionLevel = "png_compression_level"
	OptionInterlace           = "interlace"
)

// EncoderOptions are passed through to the encoder and take part in the
// cache key. Values are strings, ints, bools or slices of those.
type EncoderOptions map[string]any

func (o EncoderOptions) Format() string {
	if f, ok := o[OptionFormat].(string); ok {
		return strings.ToLower(f)
	}
	return ""
}

func (o EncoderOptions) Clone() EncoderOptions {
	if o == nil {
		return EncoderOptions{}
	}
	return maps.Clone(o)
}

type ResizeOptions struct {
	EncoderOptions        EncoderOptions
	TargetPath            string
	SkipIfDimensionsMatch bool
	BypassCache           bool
}

func (o *ResizeOptions) Clone() *ResizeOptions {
	if o == nil {
		return &ResizeOptions{}
	}
	c := *o
	c.EncoderOptions = o.EncoderOptions.Clone()
	return &c
}
