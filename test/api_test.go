package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/strengthplan/internal/gymstats/planner"
	"github.com/2beens/strengthplan/internal/gymstats/recovery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) post(ctx context.Context, path, body string) (int, []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverEndpoint+path, strings.NewReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestHealth() {
	resp, err := s.httpClient.Get(serverEndpoint + "/health")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(s.T(), "healthy", health["status"])
	assert.Equal(s.T(), "up", health["redis"])
}

func (s *IntegrationTestSuite) TestRecoveryThenPlan() {
	ctx := context.Background()

	status, body := s.post(ctx, "/recovery-status", `{
		"last_session_rpe": 9.5,
		"hours_since_training": 12,
		"sleep_quality": 4,
		"stress_level": 8,
		"muscle_soreness": 8
	}`)
	require.Equal(s.T(), http.StatusOK, status)

	var recoveryResp recovery.StatusResponse
	require.NoError(s.T(), json.Unmarshal(body, &recoveryResp))
	assert.Equal(s.T(), "Poor", recoveryResp.TrainingReadiness)

	planBody := fmt.Sprintf(`{
		"training_history": {
			"squat": [{"weight": 100, "reps": 5, "rpe": 8}, {"weight": 105, "reps": 5, "rpe": 8}],
			"bench press": [{"weight": 80, "reps": 5, "rpe": 7.5}, {"weight": 82.5, "reps": 5, "rpe": 8}]
		},
		"goal": "strength",
		"training_days_per_week": 4,
		"recovery_score": %g
	}`, recoveryResp.RecoveryScore)

	status, body = s.post(ctx, "/generate-workout-plan", planBody)
	require.Equal(s.T(), http.StatusOK, status)

	var plan planner.Plan
	require.NoError(s.T(), json.Unmarshal(body, &plan))
	assert.Len(s.T(), plan.WeeklyPlan, 7)
	assert.True(s.T(), plan.Deload)
	assert.Equal(s.T(), 7.0, plan.RPECap)

	// same request is served from the plan cache
	status, cachedBody := s.post(ctx, "/generate-workout-plan", planBody)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), string(body), string(cachedBody))
}

func (s *IntegrationTestSuite) TestRateLimitBackedByRedis() {
	ctx := context.Background()
	body := `{"weight": 100, "reps": 5, "rpe": 8}`

	for i := 0; i < testRateLimitPerMin; i++ {
		status, _ := s.post(ctx, "/calculate-rpe", body)
		require.Equal(s.T(), http.StatusOK, status, "request %d", i)
	}

	status, respBody := s.post(ctx, "/calculate-rpe", body)
	assert.Equal(s.T(), http.StatusTooManyRequests, status)
	assert.Contains(s.T(), string(respBody), "rate limit exceeded")

	keys, err := s.redisClient.Keys(ctx, "rate:compute:*").Result()
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), keys)
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	resp, err := s.httpClient.Get(fmt.Sprintf("http://%s:%s/metrics", serverHost, metricsPort))
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), string(raw), "strengthplan_main_")
}
