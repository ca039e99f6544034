// SPDX-License-Identifier: MIT

package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/kinship/config"
	"github.com/katalvlaran/kinship/logging"
)

func TestNew(t *testing.T) {
	l, err := logging.New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = logging.New(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
	assert.Panics(t, func() { logging.Must(config.LogConfig{Level: "loud"}) })
}
