package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestErrorSink_DropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("module failed", gomock.Any()).Times(1)
	logger.EXPECT().Warn("error channel full, dropping build error", gomock.Any()).Times(1)

	sink := newErrorSink(1, logger)
	sink.report(errors.New("first"))
	sink.report(errors.New("second"))

	sink.start()
	collected, dropped := sink.close()

	require.Len(t, collected, 1)
	assert.EqualError(t, collected[0], "first")
	assert.Equal(t, int64(1), dropped)
}

func TestResult_Err(t *testing.T) {
	assert.NoError(t, (&Result{}).Err())

	err := (&Result{DroppedErrors: 3}).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrBuildIncomplete.Error())
}

func TestCompiler_AbortOnMissingEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Times(1)

	cctx := NewContext(&domain.Config{}, Services{Logger: logger})
	c := New(cctx)
	cctx.Graph.AddModule(domain.NewModule(domain.ModuleIDFromString("a.js"), false, false))

	param := &domain.ResolveParam{Source: "./a", Importer: domain.ModuleIDFromString("ghost.js")}
	c.addEdge(param, domain.ModuleIDFromString("a.js"), 0)
	c.addEdge(param, domain.ModuleIDFromString("a.js"), 1)

	require.Error(t, c.fatalErr)
	assert.Contains(t, c.fatalErr.Error(), domain.ErrEdgeEndpointMissing.Error())
}
