package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_monitor/internal/domain"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()

	r.ObserveQuery(12, nil)
	r.ObserveQuery(0, errors.New("timeout"))
	r.ObserveBatch(2, 3, nil)
	r.ObserveBatch(0, 0, errors.New("500"))
	r.ObservePrune(nil)
	r.ObservePublished()
	r.ObserveRun(&domain.RunStats{Unique: 9, Duration: 1500 * time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.QueriesTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.QueriesTotal.WithLabelValues(StatusError)))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.SignalsFetched))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.SignalsInserted))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.SignalsDuplicate))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BatchesTotal.WithLabelValues(StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.PruneTotal.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SignalsPublished))
	assert.Equal(t, 9.0, testutil.ToFloat64(r.SignalsUnique))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.RunDuration))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()

	a.ObservePublished()
	a.ObserveQuery(1, nil)
	a.ObserveQuery(0, errors.New("timeout"))

	assert.Equal(t, 1.0, testutil.ToFloat64(a.SignalsPublished))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SignalsPublished))

	queries, err := testutil.GatherAndCount(a.Registry(), "signal_monitor_queries_total")
	require.NoError(t, err)
	assert.Equal(t, 2, queries)

	queries, err = testutil.GatherAndCount(b.Registry(), "signal_monitor_queries_total")
	require.NoError(t, err)
	assert.Equal(t, 0, queries)
}

func TestRecorder_Push(t *testing.T) {
	var (
		method string
		path   string
		body   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.ObserveQuery(3, nil)

	require.NoError(t, r.Push(context.Background(), srv.URL, "signal_monitor"))

	assert.Equal(t, http.MethodPut, method)
	assert.True(t, strings.HasPrefix(path, "/metrics/job/signal_monitor"), path)
	assert.NotEmpty(t, body)
}

func TestRecorder_PushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewRecorder().Push(context.Background(), srv.URL, "signal_monitor")

	assert.Error(t, err)
}
