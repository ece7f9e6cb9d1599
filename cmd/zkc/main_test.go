package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zkc/internal/app"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func provide(a *app.App, log *mocks.MockLogger) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(mockLoader, mockLogger, app.Services{})

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provide(application, mockLogger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLoader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrConfigNotFound)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	application := app.New(mockLoader, mockLogger, app.Services{})

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"compile"}, stderr, provide(application, mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_AppliesOptions verifies that options are applied to the app before execution.
func TestRun_AppliesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := app.New(mocks.NewMockConfigLoader(ctrl), mockLogger, app.Services{})

	applied := false
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provide(application, mockLogger),
		func(a *app.App) {
			applied = a == application
		})
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
