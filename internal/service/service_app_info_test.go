package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasksync-dev/tasksync/internal/logger"
)

func TestNewAppInfoService_RequiresVersion(t *testing.T) {
	_, err := NewAppInfoService("", logger.Nop())

	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestAppInfoService_GetAppVersion(t *testing.T) {
	svc, err := NewAppInfoService("1.2.3", logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", svc.GetAppVersion(context.Background()))
}
