package site

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toddself/site-gen/internal/metrics"
)

func newStageState() *BuildState {
	return &BuildState{Report: newBuildReport("test-build")}
}

func namedStage(ran *[]StageName, name StageName, err error) StageDef {
	return StageDef{Name: name, Fn: func(context.Context, *BuildState) error {
		*ran = append(*ran, name)
		return err
	}}
}

func TestRunStages_ExecutesInOrder(t *testing.T) {
	var ran []StageName
	bs := newStageState()
	defs := []StageDef{
		namedStage(&ran, StagePrepareOutput, nil),
		namedStage(&ran, StageLoadEntries, nil),
		namedStage(&ran, StageOrderEntries, nil),
	}

	err := runStages(context.Background(), bs, defs, metrics.NoopRecorder{})
	require.NoError(t, err)

	require.Equal(t, []StageName{StagePrepareOutput, StageLoadEntries, StageOrderEntries}, ran)
	for _, name := range ran {
		require.Equal(t, StageCount{Success: 1}, bs.Report.StageCounts[name])
		require.Contains(t, bs.Report.StageDurations, name)
	}
}

func TestRunStages_WarningRecordsAndContinues(t *testing.T) {
	var ran []StageName
	bs := newStageState()
	warn := newWarnStageError(StageLoadEntries, errors.New("nothing to do"))
	defs := []StageDef{
		namedStage(&ran, StageLoadEntries, warn),
		namedStage(&ran, StageOrderEntries, nil),
	}

	err := runStages(context.Background(), bs, defs, metrics.NoopRecorder{})
	require.NoError(t, err)

	require.Equal(t, []StageName{StageLoadEntries, StageOrderEntries}, ran)
	require.Len(t, bs.Report.Warnings, 1)
	require.Empty(t, bs.Report.Errors)
	require.Equal(t, StageErrorWarning, bs.Report.StageErrorKinds[StageLoadEntries])
	require.Equal(t, StageCount{Warning: 1}, bs.Report.StageCounts[StageLoadEntries])
}

func TestRunStages_FatalStops(t *testing.T) {
	var ran []StageName
	bs := newStageState()
	fatal := newFatalStageError(StageLoadEntries, errors.New("boom"))
	defs := []StageDef{
		namedStage(&ran, StagePrepareOutput, nil),
		namedStage(&ran, StageLoadEntries, fatal),
		namedStage(&ran, StageOrderEntries, nil),
	}

	err := runStages(context.Background(), bs, defs, metrics.NoopRecorder{})
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorFatal, se.Kind)
	require.Equal(t, StageLoadEntries, se.Stage)

	require.Equal(t, []StageName{StagePrepareOutput, StageLoadEntries}, ran)
	require.Len(t, bs.Report.Errors, 1)
}

func TestRunStages_PlainErrorBecomesFatal(t *testing.T) {
	var ran []StageName
	bs := newStageState()
	cause := errors.New("unexpected")
	defs := []StageDef{namedStage(&ran, StageRenderFeed, cause)}

	err := runStages(context.Background(), bs, defs, metrics.NoopRecorder{})
	require.Error(t, err)
	require.ErrorIs(t, err, cause)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorFatal, se.Kind)
	require.Equal(t, StageRenderFeed, se.Stage)
}

func TestRunStages_StageCanceledStops(t *testing.T) {
	var ran []StageName
	bs := newStageState()
	canceled := newCanceledStageError(StageLoadEntries, context.Canceled)
	defs := []StageDef{
		namedStage(&ran, StageLoadEntries, canceled),
		namedStage(&ran, StageOrderEntries, nil),
	}

	err := runStages(context.Background(), bs, defs, metrics.NoopRecorder{})
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorCanceled, se.Kind)
	require.Equal(t, []StageName{StageLoadEntries}, ran)
	require.Equal(t, StageCount{Canceled: 1}, bs.Report.StageCounts[StageLoadEntries])
}

func TestRunStages_CanceledContextShortCircuits(t *testing.T) {
	var ran []StageName
	bs := newStageState()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	defs := []StageDef{namedStage(&ran, StagePrepareOutput, nil)}

	err := runStages(ctx, bs, defs, metrics.NoopRecorder{})
	require.Error(t, err)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorCanceled, se.Kind)
	require.Empty(t, ran, "no stage should run after cancellation")
	require.Len(t, bs.Report.Errors, 1)
}

func TestPipeline_BuildReturnsCopy(t *testing.T) {
	p := NewPipeline().
		Add(StagePrepareOutput, func(context.Context, *BuildState) error { return nil })

	defs := p.Build()
	p.Add(StageLoadEntries, func(context.Context, *BuildState) error { return nil })

	require.Len(t, defs, 1)
	require.Len(t, p.Build(), 2)
}
