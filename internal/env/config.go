/*
Copyright 2025 Flant JSC

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

// Package env reads the controller's runtime configuration from the process
// environment (spec.md §6). NAMESPACE and KAFKA_BOOTSTRAP_SERVERS are
// required (GetConfig fails with ErrInvalidConfig when either is unset);
// every other knob has a default.
package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	NamespaceEnvVar               = "NAMESPACE"
	BootstrapServersEnvVar        = "KAFKA_BOOTSTRAP_SERVERS"
	UseFinalizerEnvVar            = "USE_FINALIZER"
	SkipClusterConfigReviewEnvVar = "SKIP_CLUSTER_CONFIG_REVIEW"
	EnableAdditionalMetricsEnvVar = "ENABLE_ADDITIONAL_METRICS"
	CruiseControlEnabledEnvVar    = "CRUISE_CONTROL_ENABLED"
	CruiseControlBaseURLEnvVar    = "CRUISE_CONTROL_BASE_URL"
	AlterableTopicConfigEnvVar    = "ALTERABLE_TOPIC_CONFIG"
	HealthProbeBindAddressEnvVar  = "HEALTH_PROBE_BIND_ADDRESS"
	MetricsPortEnvVar             = "METRICS_BIND_ADDRESS"
	// TopicLabelSelectorEnvVar holds a label selector string (k8s.io/apimachinery
	// labels.Parse syntax); resources that do not match it are dropped at
	// classification step 1 (spec.md §1 Non-goals, §4.2 step 1). Empty
	// selects everything.
	TopicLabelSelectorEnvVar = "TOPIC_LABEL_SELECTOR"

	DefaultHealthProbeBindAddress = ":4271"
	DefaultMetricsBindAddress     = ":4272"

	// AlterableTopicConfigAll disables config-key filtering: every key the
	// resource requests may be sent to Kafka (spec.md §4.8).
	AlterableTopicConfigAll = "ALL"
	// AlterableTopicConfigNone rejects every dynamic config key as
	// NotConfigurable (spec.md §4.8).
	AlterableTopicConfigNone = "NONE"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	namespace               string
	bootstrapServers        string
	useFinalizer            bool
	skipClusterConfigReview bool
	enableAdditionalMetrics bool
	cruiseControlEnabled    bool
	cruiseControlBaseURL    string
	alterableTopicConfig    map[string]struct{} // nil means ALL, empty means NONE
	healthProbeBindAddress  string
	metricsBindAddress      string
	topicLabelSelector      string
}

func (c *Config) Namespace() string        { return c.namespace }
func (c *Config) BootstrapServers() string { return c.bootstrapServers }
func (c *Config) UseFinalizer() bool       { return c.useFinalizer }
func (c *Config) SkipClusterConfigReview() bool { return c.skipClusterConfigReview }
func (c *Config) EnableAdditionalMetrics() bool { return c.enableAdditionalMetrics }
func (c *Config) CruiseControlEnabled() bool    { return c.cruiseControlEnabled }
func (c *Config) CruiseControlBaseURL() string  { return c.cruiseControlBaseURL }
func (c *Config) HealthProbeBindAddress() string { return c.healthProbeBindAddress }
func (c *Config) MetricsBindAddress() string     { return c.metricsBindAddress }
func (c *Config) TopicLabelSelector() string     { return c.topicLabelSelector }

// IsConfigKeyAlterable reports whether key may be sent as a dynamic topic
// config, per the ALTERABLE_TOPIC_CONFIG policy (spec.md §4.8): "ALL" allows
// everything, "NONE" allows nothing, anything else is a comma-separated
// allow-list.
func (c *Config) IsConfigKeyAlterable(key string) bool {
	if c.alterableTopicConfig == nil {
		return true
	}
	_, ok := c.alterableTopicConfig[key]
	return ok
}

type ConfigProvider interface {
	Namespace() string
	BootstrapServers() string
	UseFinalizer() bool
	SkipClusterConfigReview() bool
	EnableAdditionalMetrics() bool
	CruiseControlEnabled() bool
	CruiseControlBaseURL() string
	IsConfigKeyAlterable(key string) bool
	HealthProbeBindAddress() string
	MetricsBindAddress() string
	TopicLabelSelector() string
}

var _ ConfigProvider = &Config{}

func GetConfig() (*Config, error) {
	cfg := &Config{}

	cfg.namespace = os.Getenv(NamespaceEnvVar)
	if cfg.namespace == "" {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidConfig, NamespaceEnvVar)
	}

	cfg.bootstrapServers = os.Getenv(BootstrapServersEnvVar)
	if cfg.bootstrapServers == "" {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidConfig, BootstrapServersEnvVar)
	}

	var err error
	if cfg.useFinalizer, err = getBoolEnv(UseFinalizerEnvVar, true); err != nil {
		return nil, err
	}
	if cfg.skipClusterConfigReview, err = getBoolEnv(SkipClusterConfigReviewEnvVar, false); err != nil {
		return nil, err
	}
	if cfg.enableAdditionalMetrics, err = getBoolEnv(EnableAdditionalMetricsEnvVar, false); err != nil {
		return nil, err
	}
	if cfg.cruiseControlEnabled, err = getBoolEnv(CruiseControlEnabledEnvVar, false); err != nil {
		return nil, err
	}

	cfg.cruiseControlBaseURL = os.Getenv(CruiseControlBaseURLEnvVar)
	if cfg.cruiseControlEnabled && cfg.cruiseControlBaseURL == "" {
		return nil, fmt.Errorf("%w: %s is required when %s=true",
			ErrInvalidConfig, CruiseControlBaseURLEnvVar, CruiseControlEnabledEnvVar)
	}

	switch raw := os.Getenv(AlterableTopicConfigEnvVar); raw {
	case "", AlterableTopicConfigAll:
		cfg.alterableTopicConfig = nil
	case AlterableTopicConfigNone:
		cfg.alterableTopicConfig = map[string]struct{}{}
	default:
		cfg.alterableTopicConfig = make(map[string]struct{})
		for _, key := range strings.Split(raw, ",") {
			key = strings.TrimSpace(key)
			if key != "" {
				cfg.alterableTopicConfig[key] = struct{}{}
			}
		}
	}

	cfg.healthProbeBindAddress = os.Getenv(HealthProbeBindAddressEnvVar)
	if cfg.healthProbeBindAddress == "" {
		cfg.healthProbeBindAddress = DefaultHealthProbeBindAddress
	}

	cfg.metricsBindAddress = os.Getenv(MetricsPortEnvVar)
	if cfg.metricsBindAddress == "" {
		cfg.metricsBindAddress = DefaultMetricsBindAddress
	}

	cfg.topicLabelSelector = os.Getenv(TopicLabelSelectorEnvVar)

	return cfg, nil
}

func getBoolEnv(name string, def bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}
	return v, nil
}
