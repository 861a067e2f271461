// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ortheo/internal/platform/constants"
	"github.com/taibuivan/ortheo/internal/platform/ctxutil"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Locale verifies the locale default and round-trip behaviour.
*/
func TestContext_Locale(t *testing.T) {
	ctx := context.Background()

	// 1. Initially should fall back to the default locale
	assert.Equal(t, constants.DefaultLocale, ctxutil.GetLocale(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLocale(ctx, "en")
	assert.Equal(t, "en", ctxutil.GetLocale(ctx))

	// 3. An empty stored value still resolves to the default
	ctx = ctxutil.WithLocale(ctx, "")
	assert.Equal(t, constants.DefaultLocale, ctxutil.GetLocale(ctx))
}
