package jobs_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager_StartAndStopAll(t *testing.T) {
	var events []string
	jm := jobs.NewJobManager().
		Add("a", recordingJob{name: "a", events: &events}).
		Add("b", recordingJob{name: "b", events: &events})

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var events []string
	jm := jobs.NewJobManager().
		Add("a", recordingJob{name: "a", events: &events}).
		Add("b", recordingJob{name: "b", events: &events, startErr: errors.New("boom")})

	err := jm.StartAll()
	require.ErrorContains(t, err, "failed to start b job")
	assert.Equal(t, []string{"start a", "stop a"}, events)

	// nothing left to stop
	jm.StopAll()
	assert.Len(t, events, 2)
}

func TestJobManager_RunsApprovalBacklogJob(t *testing.T) {
	job := jobs.NewApprovalBacklogJob(new(MockPendingOrdersReader), "0 0 0 1 1 *", time.Hour,
		time.Now, zap.NewNop())

	jm := jobs.NewJobManager().Add("approval backlog", job)
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
