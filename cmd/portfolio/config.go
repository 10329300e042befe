package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/orbit"
	"github.com/phanxgames/orbit/catalog"
)

// envPrefix namespaces every environment override, e.g. ORBIT_RADIUS.
const envPrefix = "ORBIT_"

// appConfig is the viewer config plus the command's own settings. The
// viewer fields sit at the top level of the YAML file.
type appConfig struct {
	orbit.Config `yaml:",inline"`

	Catalog       string `yaml:"catalog" env:"CATALOG"`
	Watch         bool   `yaml:"watch" env:"WATCH"`
	Script        string `yaml:"script" env:"SCRIPT"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`

	Title   string `yaml:"title" env:"TITLE"`
	Width   int    `yaml:"width" env:"WIDTH"`
	Height  int    `yaml:"height" env:"HEIGHT"`
	ShowFPS bool   `yaml:"show_fps" env:"SHOW_FPS"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Config:        orbit.DefaultConfig(),
		ScreenshotDir: "screenshots",
		Title:         "Portfolio",
		Width:         1280,
		Height:        720,
	}
}

// loadConfig layers the defaults, the YAML file at path (if any) and the
// environment. A nil environ reads the process environment.
func loadConfig(path string, environ map[string]string) (appConfig, error) {
	c := defaultAppConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// applyFlags copies the flags set on the command line over c. Flags the
// command does not define are skipped.
func applyFlags(cmd *cobra.Command, c *appConfig) error {
	flags := cmd.Flags()
	var err error
	set := func(name string, fn func() error) {
		if err != nil || flags.Lookup(name) == nil || !flags.Changed(name) {
			return
		}
		err = fn()
	}

	set("catalog", func() (e error) { c.Catalog, e = flags.GetString("catalog"); return })
	set("script", func() (e error) { c.Script, e = flags.GetString("script"); return })
	set("watch", func() (e error) { c.Watch, e = flags.GetBool("watch"); return })
	set("radius", func() (e error) { c.Radius, e = flags.GetFloat64("radius"); return })
	set("reduced-motion", func() (e error) { c.ReducedMotion, e = flags.GetBool("reduced-motion"); return })
	set("fps", func() (e error) { c.ShowFPS, e = flags.GetBool("fps"); return })
	set("sound", func() (e error) { c.Sound, e = flags.GetBool("sound"); return })
	set("layout", func() error {
		s, e := flags.GetString("layout")
		if e != nil {
			return e
		}
		c.Layout, e = orbit.ParseLayoutKind(s)
		return e
	})
	if verbose {
		c.Debug = true
	}
	return err
}

// loadCatalog opens the configured catalog, or the sample projects when
// none is set.
func loadCatalog(c appConfig) (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Sample(), nil
	}
	return catalog.LoadFile(c.Catalog)
}
