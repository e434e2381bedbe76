package pipeline

import (
	"bytes"

	"github.com/matzehuels/labeler/pkg/config"
	"github.com/matzehuels/labeler/pkg/scene"
	"github.com/matzehuels/labeler/pkg/textmeasure"
)

// Parse reads the scene named by opts, fills unset values from d and
// validates the result. The caller's scene is never modified.
func Parse(opts Options, d scene.Defaults) (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	switch {
	case opts.Scene != nil:
		s = opts.Scene
	case len(opts.Data) > 0:
		s, err = scene.Decode(bytes.NewReader(opts.Data))
	default:
		s, err = scene.Load(opts.Path)
	}
	if err != nil {
		return nil, err
	}

	s = s.WithDefaults(d)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SceneDefaults returns the scene defaults configured in cfg.
func SceneDefaults(cfg config.Config) scene.Defaults {
	return scene.Defaults{
		Font:       textmeasure.Font{Size: cfg.Font.Size, Weight: cfg.Font.Weight},
		Angle:      cfg.Spacer.Angle,
		BandHeight: cfg.Spacer.BandHeight,
	}
}

// sourceName describes the scene input for logs and hooks.
func sourceName(opts Options) string {
	switch {
	case opts.Scene != nil:
		return "scene"
	case len(opts.Data) > 0:
		return "data"
	}
	return opts.Path
}
