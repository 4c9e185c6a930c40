/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	dfv1 "github.com/numaproj/eventbuilder/pkg/apis/eventbuilder/v1alpha1"
	"github.com/numaproj/eventbuilder/pkg/seedfinder"
)

type SinkType string

const (
	SinkTypeLog       SinkType = "log"
	SinkTypeJSONL     SinkType = "jsonl"
	SinkTypeBlackhole SinkType = "blackhole"
)

// Config is the configuration of an event building run.
type Config struct {
	// Builder is the static event builder configuration.
	Builder dfv1.BuilderSpec `json:"builder"`
	// SeedFinder computes explicit seeds from the selection detectors when set. It needs a
	// builder without reference detector.
	// +optional
	SeedFinder *SeedFinderConfig `json:"seedFinder,omitempty"`
	Source     SourceConfig      `json:"source"`
	Sink       SinkConfig        `json:"sink"`
	// Parallelism is the number of batches built concurrently.
	Parallelism int           `json:"parallelism" validate:"gte=1"`
	Metrics     MetricsConfig `json:"metrics"`
}

type SeedFinderConfig struct {
	seedfinder.SlidingWindow `json:",inline" mapstructure:",squash"`
	// Detectors are the streams the seeds are searched in, merged in time.
	Detectors []dfv1.DetectorKind `json:"detectors" validate:"min=1"`
}

type SourceConfig struct {
	// Path of the batch file.
	Path string `json:"path" validate:"required"`
}

type SinkConfig struct {
	Type SinkType `json:"type" validate:"oneof=log jsonl blackhole"`
	// Path of the output file of the jsonl sink.
	Path string `json:"path" validate:"required_if=Type jsonl"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port" validate:"gte=0,lte=65535"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(dfv1.EnvConfigPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("parallelism", dfv1.DefaultParallelism)
	v.SetDefault("sink.type", string(SinkTypeLog))
	v.SetDefault("sink.path", "")
	v.SetDefault("source.path", "")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", dfv1.DefaultMetricsPort)
	return v
}

// LoadConfig reads the configuration file at path, or the default configuration file when path is
// empty, applies the EVBUILD_ environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(dfv1.DefaultConfigName)
		v.AddConfigPath(dfv1.DefaultConfigPath)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration file. %w", err)
	}
	return unmarshal(v)
}

// ParseConfig reads a YAML configuration, applies the environment overrides and validates it.
func ParseConfig(data string) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(strings.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse configuration. %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed unmarshal configuration file. %w", err)
	}
	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// applyDefaults gives the default window to selection detectors which set none. A reference
// detector without window stays seed only.
func (c *Config) applyDefaults() {
	for i, d := range c.Builder.Detectors {
		if d.TimeWindowBegin != 0 || d.TimeWindowEnd != 0 {
			continue
		}
		def := dfv1.NewDetectorSpec(d.Kind)
		c.Builder.Detectors[i].TimeWindowBegin = def.TimeWindowBegin
		c.Builder.Detectors[i].TimeWindowEnd = def.TimeWindowEnd
	}
}

// Validate returns every error of the configuration.
func (c *Config) Validate() error {
	var errs error
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = multierr.Append(errs, fmt.Errorf("invalid %s: failed on %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = multierr.Append(errs, err)
		}
	}
	errs = multierr.Append(errs, c.Builder.Validate())
	if c.SeedFinder != nil {
		errs = multierr.Append(errs, c.SeedFinder.Validate())
		if c.Builder.HasReference() {
			errs = multierr.Append(errs, errors.New("seed finder and reference detector are mutually exclusive"))
		}
		for _, k := range c.SeedFinder.Detectors {
			if _, err := dfv1.ParseDetectorKind(string(k)); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("seed finder: %w", err))
			}
		}
	}
	return errs
}
