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

package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhouse/kafka-topic-operator/internal/env"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(env.NamespaceEnvVar, "kafka")
	t.Setenv(env.BootstrapServersEnvVar, "broker:9092")
}

func TestGetConfig_RequiresNamespace(t *testing.T) {
	t.Setenv(env.BootstrapServersEnvVar, "broker:9092")
	_, err := env.GetConfig()
	require.ErrorIs(t, err, env.ErrInvalidConfig)
}

func TestGetConfig_RequiresBootstrapServers(t *testing.T) {
	t.Setenv(env.NamespaceEnvVar, "kafka")
	_, err := env.GetConfig()
	require.ErrorIs(t, err, env.ErrInvalidConfig)
}

func TestGetConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := env.GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "kafka", cfg.Namespace())
	assert.Equal(t, "broker:9092", cfg.BootstrapServers())
	assert.True(t, cfg.UseFinalizer())
	assert.False(t, cfg.SkipClusterConfigReview())
	assert.False(t, cfg.EnableAdditionalMetrics())
	assert.False(t, cfg.CruiseControlEnabled())
	assert.Equal(t, env.DefaultHealthProbeBindAddress, cfg.HealthProbeBindAddress())
	assert.Equal(t, env.DefaultMetricsBindAddress, cfg.MetricsBindAddress())
	assert.True(t, cfg.IsConfigKeyAlterable("retention.ms"))
}

func TestGetConfig_CruiseControlRequiresBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv(env.CruiseControlEnabledEnvVar, "true")

	_, err := env.GetConfig()
	require.ErrorIs(t, err, env.ErrInvalidConfig)

	t.Setenv(env.CruiseControlBaseURLEnvVar, "http://cruise-control:9090")
	cfg, err := env.GetConfig()
	require.NoError(t, err)
	assert.True(t, cfg.CruiseControlEnabled())
	assert.Equal(t, "http://cruise-control:9090", cfg.CruiseControlBaseURL())
}

func TestGetConfig_InvalidBool(t *testing.T) {
	setRequired(t)
	t.Setenv(env.UseFinalizerEnvVar, "not-a-bool")

	_, err := env.GetConfig()
	require.ErrorIs(t, err, env.ErrInvalidConfig)
}

func TestGetConfig_AlterableTopicConfigPolicy(t *testing.T) {
	t.Run("all by default", func(t *testing.T) {
		setRequired(t)
		cfg, err := env.GetConfig()
		require.NoError(t, err)
		assert.True(t, cfg.IsConfigKeyAlterable("retention.ms"))
	})

	t.Run("ALL explicit", func(t *testing.T) {
		setRequired(t)
		t.Setenv(env.AlterableTopicConfigEnvVar, env.AlterableTopicConfigAll)
		cfg, err := env.GetConfig()
		require.NoError(t, err)
		assert.True(t, cfg.IsConfigKeyAlterable("anything"))
	})

	t.Run("NONE rejects everything", func(t *testing.T) {
		setRequired(t)
		t.Setenv(env.AlterableTopicConfigEnvVar, env.AlterableTopicConfigNone)
		cfg, err := env.GetConfig()
		require.NoError(t, err)
		assert.False(t, cfg.IsConfigKeyAlterable("retention.ms"))
	})

	t.Run("allow-list", func(t *testing.T) {
		setRequired(t)
		t.Setenv(env.AlterableTopicConfigEnvVar, "retention.ms, cleanup.policy")
		cfg, err := env.GetConfig()
		require.NoError(t, err)
		assert.True(t, cfg.IsConfigKeyAlterable("retention.ms"))
		assert.True(t, cfg.IsConfigKeyAlterable("cleanup.policy"))
		assert.False(t, cfg.IsConfigKeyAlterable("segment.bytes"))
	})
}
