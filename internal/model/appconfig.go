package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultThickness    float64      `json:"default_thickness"`
	DefaultSpacing      float64      `json:"default_spacing"`
	DefaultMargin       float64      `json:"default_margin"`
	DefaultScaleZ       float64      `json:"default_scale_z"`
	DefaultDistribution Distribution `json:"default_distribution"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultThickness:    defaults.Outline.Thickness,
		DefaultSpacing:      defaults.Pattern.Spacing,
		DefaultMargin:       defaults.Pattern.Margin,
		DefaultScaleZ:       defaults.Pattern.ScaleZ,
		DefaultDistribution: defaults.Pattern.Distribution,
		RecentProjects:      []string{},
		Theme:               "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings
// struct. Used when creating a new project so it inherits saved defaults.
func (c AppConfig) ApplyToSettings(s *Settings) {
	s.Outline.Thickness = c.DefaultThickness
	s.Pattern.Spacing = c.DefaultSpacing
	s.Pattern.Margin = c.DefaultMargin
	s.Pattern.ScaleZ = c.DefaultScaleZ
	if c.DefaultDistribution != "" {
		s.Pattern.Distribution = c.DefaultDistribution
	}
}
