package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// ViewerConfig holds the settings of the interactive viewer. It is read from an
// INI-style file:
//
//	[display]
//	scale = 1
//	pickThreshold = 8
//	frameRate = 30
//
//	[trajectory]
//	timeStep = 5e-10
//	steps = 16
//	samples = 100
//	fieldX = 0
//	fieldY = 4
//	fieldZ = 0
//
//	[camera]
//	fov = 45
//	x = 400
//	y = 150
//	z = 700
type ViewerConfig struct {
	Display struct {
		Scale         float64
		PickThreshold float64
		FrameRate     int
	}
	Trajectory struct {
		TimeStep float64
		Steps    int
		Samples  int
		FieldX   float64
		FieldY   float64
		FieldZ   float64
	}
	Camera struct {
		Fov     float64
		X, Y, Z float64
	}
}

// DefaultViewerConfig returns settings matching the reference event display.
func DefaultViewerConfig() *ViewerConfig {
	vc := &ViewerConfig{}
	vc.Display.Scale = 1
	vc.Display.PickThreshold = 8
	vc.Display.FrameRate = 30
	vc.Trajectory.TimeStep = 5e-10
	vc.Trajectory.Steps = 16
	vc.Trajectory.Samples = 100
	vc.Trajectory.FieldY = 4
	vc.Camera.Fov = 45
	vc.Camera.X, vc.Camera.Y, vc.Camera.Z = 400, 150, 700
	return vc
}

// ReadViewerConfig reads fname over the defaults. Keys missing from the file keep
// their default value. Empty fname returns the defaults.
func ReadViewerConfig(fname string) (*ViewerConfig, error) {
	vc := DefaultViewerConfig()
	if fname != "" {
		if err := gcfg.ReadFileInto(vc, fname); err != nil {
			return nil, err
		}
	}
	if err := vc.Check(); err != nil {
		return nil, err
	}
	return vc, nil
}

// ReadViewerConfigString is ReadViewerConfig for in-memory config text.
func ReadViewerConfigString(text string) (*ViewerConfig, error) {
	vc := DefaultViewerConfig()
	if err := gcfg.ReadStringInto(vc, text); err != nil {
		return nil, err
	}
	if err := vc.Check(); err != nil {
		return nil, err
	}
	return vc, nil
}

// Check validates value ranges.
func (vc *ViewerConfig) Check() error {
	switch {
	case vc.Display.Scale <= 0:
		return fmt.Errorf("display scale must be positive, but is %g", vc.Display.Scale)
	case vc.Display.PickThreshold <= 0:
		return fmt.Errorf("pick threshold must be positive, but is %g", vc.Display.PickThreshold)
	case vc.Display.FrameRate < 1 || vc.Display.FrameRate > 120:
		return fmt.Errorf("frame rate must be in range [1, 120], but is %d", vc.Display.FrameRate)
	case vc.Trajectory.TimeStep <= 0:
		return fmt.Errorf("trajectory time step must be positive, but is %g", vc.Trajectory.TimeStep)
	case vc.Trajectory.Steps < 1:
		return fmt.Errorf("trajectory needs at least one step, but has %d", vc.Trajectory.Steps)
	case vc.Trajectory.Samples < 1:
		return fmt.Errorf("trajectory needs at least one sample, but has %d", vc.Trajectory.Samples)
	case vc.Camera.Fov <= 0 || vc.Camera.Fov >= 180:
		return fmt.Errorf("camera fov must be in range (0, 180), but is %g", vc.Camera.Fov)
	}
	return nil
}
