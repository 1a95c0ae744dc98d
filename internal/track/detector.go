package track

// DetectorConfig holds the tunable parameters for one detection pass.
type DetectorConfig struct {
	// Window is the number of samples between the triangle apex and each arm.
	Window int `json:"window"`

	// ThresholdDeg is the maximum bend angle (degrees) still considered a
	// corner.
	ThresholdDeg float64 `json:"threshold_degrees"`
}

// DefaultDetectorConfig returns the stock tuning.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Window:       DefaultWindow,
		ThresholdDeg: DefaultThresholdDeg,
	}
}

// Detector bundles angle estimation and corner selection into a single pass.
type Detector struct {
	cfg DetectorConfig
}

// NewDetector creates a Detector with the given configuration. Zero-value
// fields fall back to the defaults.
func NewDetector(cfg DetectorConfig) *Detector {
	if cfg.Window == 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.ThresholdDeg == 0 {
		cfg.ThresholdDeg = DefaultThresholdDeg
	}
	return &Detector{cfg: cfg}
}

// Config returns the detector's effective configuration.
func (d *Detector) Config() DetectorConfig {
	return d.cfg
}

// Detect runs both stages over trk and returns the full angle series together
// with the selected corners. Both outputs are recomputed from scratch on each
// call; nothing is cached or mutated between calls.
func (d *Detector) Detect(trk Track) (AngleSeries, []Corner, error) {
	angles, err := ComputeBendAngles(trk, d.cfg.Window)
	if err != nil {
		return nil, nil, err
	}
	corners, err := SelectCorners(trk, angles, d.cfg.ThresholdDeg)
	if err != nil {
		return nil, nil, err
	}
	return angles, corners, nil
}
