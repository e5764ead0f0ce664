package main

import (
	"github.com/bibo-tts/bibo/internal/catalog"
	"github.com/bibo-tts/bibo/internal/tts"
	"github.com/bibo-tts/bibo/utils"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// options is the merged view of flags, environment and config file.
type options struct {
	backend catalog.Backend
	layout  catalog.Layout
	env     envConfig

	voice    string
	speed    tts.Speed
	fast     bool
	input    string
	output   string
	quiet    bool
	list     bool
	download string
	debug    bool

	mirror     string
	python     string
	threads    int
	cache      bool
	cacheMaxMB int64
}

func loadOptions() (options, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return options{}, tts.ConfigError(err.Error())
	}

	backend, err := catalog.ParseBackend(viper.GetString("engine"))
	if err != nil {
		return options{}, err
	}
	speed, err := tts.ParseSpeed(viper.GetString("speed"))
	if err != nil {
		return options{}, err
	}
	layout, err := catalog.DefaultLayout(utils.ExpandPath(cfg.DataHome))
	if err != nil {
		return options{}, tts.Other("Could not find the data directory", err)
	}

	cfg.SherpaPath = utils.ExpandPath(cfg.SherpaPath)
	return options{
		backend:    backend,
		layout:     layout,
		env:        cfg,
		voice:      viper.GetString("voice"),
		speed:      speed,
		fast:       viper.GetBool("fast"),
		input:      viper.GetString("input"),
		output:     utils.ExpandPath(viper.GetString("output")),
		quiet:      viper.GetBool("quiet"),
		list:       viper.GetBool("list"),
		download:   viper.GetString("download"),
		debug:      viper.GetBool("debug"),
		mirror:     viper.GetString("mirror"),
		python:     viper.GetString("python"),
		threads:    viper.GetInt("threads"),
		cache:      viper.GetBool("cache.enabled") && !viper.GetBool("no-cache"),
		cacheMaxMB: viper.GetInt64("cache.max_size"),
	}, nil
}

// effectiveSpeed applies the fast shortcut.
func (o options) effectiveSpeed() tts.Speed {
	return tts.EffectiveSpeed(o.speed, o.fast)
}

func (o options) userAgent() string {
	return "bibo/" + Version
}
