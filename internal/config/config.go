// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nttcom/pcepobj/internal/pkg/gobgp"
	"github.com/nttcom/pcepobj/pkg/packet/pcep"
)

type Log struct {
	Path  string `yaml:"path"`
	Name  string `yaml:"name"`
	Debug bool   `yaml:"debug"`
}

type Codec struct {
	StrictPadding bool   `yaml:"strictPadding"`
	EroLengthMode string `yaml:"eroLengthMode"` // unpadded | padded
}

type Gobgp struct {
	Address string `yaml:"address"`
	Port    string `yaml:"port"`
}

type Global struct {
	Log   Log   `yaml:"log"`
	Codec Codec `yaml:"codec"`
	Gobgp Gobgp `yaml:"gobgp"`
}

type Config struct {
	Global Global `yaml:"global"`
}

func ReadConfigFile(configFile string) (Config, error) {
	c := new(Config)

	f, err := os.Open(configFile)
	if err != nil {
		return *c, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return *c, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	return *c, nil
}

// CodecOpts converts the codec section into decoder/encoder options.
func (c Config) CodecOpts() ([]pcep.Opt, error) {
	mode, err := pcep.ParseEroLengthMode(c.Global.Codec.EroLengthMode)
	if err != nil {
		return nil, err
	}
	opts := []pcep.Opt{pcep.WithEroLengthMode(mode)}
	if c.Global.Codec.StrictPadding {
		opts = append(opts, pcep.WithStrictPadding())
	}
	return opts, nil
}

// LogFile returns the log file path, or "" when file logging is not configured.
func (c Config) LogFile() string {
	if c.Global.Log.Path == "" || c.Global.Log.Name == "" {
		return ""
	}
	return c.Global.Log.Path + c.Global.Log.Name
}

// GobgpOptions returns the GoBGP API endpoint, defaulting to 127.0.0.1:50051.
func (c Config) GobgpOptions() gobgp.GobgpOptions {
	opts := gobgp.GobgpOptions{GobgpAddr: "127.0.0.1", GobgpPort: "50051"}
	if c.Global.Gobgp.Address != "" {
		opts.GobgpAddr = c.Global.Gobgp.Address
	}
	if c.Global.Gobgp.Port != "" {
		opts.GobgpPort = c.Global.Gobgp.Port
	}
	return opts
}
