package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/cenkalti/backoff"        // Exponential backoff.
	"github.com/stretchr/testify/assert" // Test assertions e.g. equality.
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gock "gopkg.in/h2non/gock.v1" // HTTP endpoint mocking.

	"github.com/mintel/timespan/pkg/duration"
)

const serverURL = "http://durcalc.test:8080"

// noWait retries n times without sleeping.
func noWait(n uint64) Option {
	return WithBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, n)
	})
}

func newClient(t *testing.T, opts ...Option) *Client {
	c, err := New(serverURL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	for _, u := range []string{"durcalc.test:8080", "ftp://durcalc.test", "http://[::1"} {
		_, err := New(u)
		assert.Error(t, err, u)
	}
}

func TestClient_Eval(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		defer gock.Off()
		gock.New(serverURL).
			Post("/v1/eval").
			MatchType("json").
			JSON(map[string]interface{}{
				"op":        "add",
				"mode":      "saturating",
				"durations": []string{"1h0m0s", "-30m0s"},
			}).
			Reply(http.StatusOK).
			JSON(map[string]interface{}{
				"expr":     "add(1h0m0s, -30m0s)",
				"result":   "30m0s",
				"duration": map[string]int64{"seconds": 1800, "nanoseconds": 0},
				"iso":      "PT30M",
			})

		resp, err := newClient(t).Eval(context.Background(), Request{
			Op:        "add",
			Mode:      "saturating",
			Durations: []duration.Duration{duration.Hour, duration.Minutes(-30)},
		})
		require.NoError(t, err)
		assert.Equal(t, "30m0s", resp.Result)
		assert.Equal(t, duration.Minutes(30), resp.Duration)
		assert.Nil(t, resp.Ratio)
		assert.True(t, gock.IsDone())
	})

	t.Run("ratio", func(t *testing.T) {
		defer gock.Off()
		gock.New(serverURL).
			Post("/v1/eval").
			Reply(http.StatusOK).
			JSON(map[string]interface{}{"expr": "ratio(1m30s, 1m0s)", "result": "1.5", "ratio": 1.5})

		resp, err := newClient(t).Eval(context.Background(), Request{
			Op:        "ratio",
			Durations: []duration.Duration{duration.Seconds(90), duration.Minute},
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Ratio)
		assert.Equal(t, 1.5, *resp.Ratio)
	})

	t.Run("overflow", func(t *testing.T) {
		defer gock.Off()
		gock.New(serverURL).
			Post("/v1/eval").
			Reply(http.StatusUnprocessableEntity).
			JSON(map[string]string{"error": "add(...): duration overflow"})

		_, err := newClient(t, noWait(3)).Eval(context.Background(), Request{
			Op:        "add",
			Durations: []duration.Duration{duration.Max, duration.Second},
		})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.ErrorIs(t, err, duration.ErrOverflow)
		assert.True(t, gock.IsDone(), "4xx responses are not retried")
	})

	t.Run("retry", func(t *testing.T) {
		defer gock.Off()
		gock.New(serverURL).
			Post("/v1/eval").
			Times(2).
			Reply(http.StatusServiceUnavailable)
		gock.New(serverURL).
			Post("/v1/eval").
			Reply(http.StatusOK).
			JSON(map[string]interface{}{
				"expr":     "neg(1s)",
				"result":   "-1s",
				"duration": map[string]int64{"seconds": -1, "nanoseconds": 0},
			})

		core, logs := observer.New(zapcore.DebugLevel)
		c := newClient(t, noWait(3), WithLogger(zap.New(core)))
		resp, err := c.Eval(context.Background(), Request{Op: "neg", Durations: []duration.Duration{duration.Second}})
		require.NoError(t, err)
		assert.Equal(t, duration.Seconds(-1), resp.Duration)
		assert.Equal(t, 2, logs.FilterMessage("retrying request").Len())
		assert.True(t, gock.IsDone())
	})

	t.Run("give up", func(t *testing.T) {
		defer gock.Off()
		gock.New(serverURL).
			Post("/v1/eval").
			Times(2).
			Reply(http.StatusBadGateway).
			BodyString("upstream down")

		_, err := newClient(t, noWait(1)).Eval(context.Background(), Request{Op: "neg", Durations: []duration.Duration{duration.Second}})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
		assert.NotErrorIs(t, err, duration.ErrOverflow)
		assert.True(t, gock.IsDone())
	})
}

func TestClient_Parse(t *testing.T) {
	defer gock.Off()
	gock.New(serverURL).
		Get("/v1/parse").
		MatchParam("d", "PT1H30M").
		Reply(http.StatusOK).
		JSON(map[string]interface{}{"text": "1h30m0s", "seconds": 5400, "nanoseconds": 0})
	gock.New(serverURL).
		Get("/v1/parse").
		MatchParam("d", "soon").
		Reply(http.StatusBadRequest).
		JSON(map[string]string{"error": `invalid duration "soon"`})

	c := newClient(t, noWait(3))
	d, err := c.Parse(context.Background(), "PT1H30M")
	require.NoError(t, err)
	assert.Equal(t, duration.Minutes(90), d)

	_, err = c.Parse(context.Background(), "soon")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, `invalid duration "soon"`, apiErr.Message)
	assert.True(t, gock.IsDone())
}
