package config

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. COLLECTIONVIEW_VIEW_MODE
const EnvPrefix = "COLLECTIONVIEW"

// Override keys shared by flags and environment variables
const (
	KeyConfig        = "config"
	KeySource        = "source"
	KeyViewMode      = "view_mode"
	KeyMarkdownStyle = "markdown_style"
	KeyWatch         = "watch"
	KeyNoMouse       = "no_mouse"
	KeyVerbose       = "verbose"
)

// NewViper returns a viper instance reading COLLECTIONVIEW_* variables.
// Callers bind their cobra flags onto it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies flag and environment values that were set over the
// file configuration, then re-validates
func (c *Config) ApplyOverrides(v *viper.Viper) error {
	if v.IsSet(KeySource) {
		if paths := v.GetStringSlice(KeySource); len(paths) > 0 {
			c.Source.Paths = paths
			c.dir = ""
		}
	}
	if v.IsSet(KeyViewMode) && v.GetString(KeyViewMode) != "" {
		c.Collection.ViewMode = v.GetString(KeyViewMode)
	}
	if v.IsSet(KeyMarkdownStyle) && v.GetString(KeyMarkdownStyle) != "" {
		c.UISettings.MarkdownStyle = v.GetString(KeyMarkdownStyle)
	}
	if v.GetBool(KeyWatch) {
		c.Source.Watch = true
	}
	if v.GetBool(KeyNoMouse) {
		c.UISettings.Mouse = false
	}
	return c.Validate()
}

// SuggestField returns the known field closest to name, for "did you mean"
// hints. Nothing is suggested when every candidate is too far away.
func SuggestField(name string, known []string) (string, bool) {
	needle := strings.ToLower(name)
	best, bestDist := "", -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}

	limit := len(needle) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return "", false
	}
	return best, true
}
