package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bbernstein/sunnyweather/internal/models"
	"github.com/bbernstein/sunnyweather/pkg/http/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkCalls(t *testing.T) {
	ok := &client.Response{StatusCode: http.StatusOK, Body: []byte(`{"status":"ok"}`)}

	tests := []struct {
		name      string
		invoke    func(n *Network) error
		wantPath  string
		wantQuery map[string]string
	}{
		{
			name: "search places",
			invoke: func(n *Network) error {
				_, err := n.SearchPlaces(context.Background(), "北京")
				return err
			},
			wantPath:  "/v2/place",
			wantQuery: map[string]string{"query": "北京", "token": "tok", "lang": "zh_CN"},
		},
		{
			name: "realtime weather",
			invoke: func(n *Network) error {
				_, err := n.GetRealtimeWeather(context.Background(), "116.4073963", "39.9041999")
				return err
			},
			wantPath: "/v2.6/tok/116.4073963,39.9041999/realtime.json",
		},
		{
			name: "daily weather",
			invoke: func(n *Network) error {
				_, err := n.GetDailyWeather(context.Background(), "116.4073963", "39.9041999")
				return err
			},
			wantPath:  "/v2.6/tok/116.4073963,39.9041999/daily",
			wantQuery: map[string]string{"dailysteps": "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := &mockExecutor{enqueueFunc: respondWith(ok, nil)}
			n := New(executor, Options{Token: "tok"})

			require.NoError(t, tt.invoke(n))

			calls := executor.recorded()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantPath, calls[0].Path)
			for k, v := range tt.wantQuery {
				assert.Equal(t, v, calls[0].Query.Get(k))
			}
		})
	}
}

func TestNetworkAgainstHTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/place":
			_, _ = w.Write([]byte(`{"status":"ok","places":[{"name":"Beijing","location":{"lng":116.4,"lat":39.9},"formatted_address":"China"}]}`))
		case "/v2.6/tok/116.4,39.9/realtime.json":
			_, _ = w.Write([]byte(`{"status":"ok","result":{"realtime":{"temperature":18,"skycon":"CLEAR_DAY"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	n := New(client.New(client.Options{BaseURL: server.URL, Timeout: time.Second}), Options{Token: "tok"})

	places, err := n.SearchPlaces(context.Background(), "Beijing")
	require.NoError(t, err)
	require.Len(t, places.Places, 1)
	assert.Equal(t, models.Coordinate("116.4"), places.Places[0].Location.Lng)

	realtime, err := n.GetRealtimeWeather(context.Background(), "116.4", "39.9")
	require.NoError(t, err)
	assert.Equal(t, 18.0, realtime.Result.Realtime.Temperature)

	_, err = n.GetDailyWeather(context.Background(), "116.4", "39.9")
	require.Error(t, err)
}
