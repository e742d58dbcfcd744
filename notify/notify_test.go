package notify

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifier_Notify(t *testing.T) {
	var received DingNotify
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"errcode":0,"errmsg":"ok"}`))
	}))
	defer server.Close()

	err := NewNotifier(server.URL).Notify(context.Background(), "swap confirmed")
	require.NoError(t, err)
	require.Equal(t, "text", received.MsgType)
	require.Equal(t, "swap confirmed", received.Text.Content)
}

func TestNotifier_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			w.WriteHeader(http.StatusBadGateway)
		case "/code":
			w.Write([]byte(`{"errcode":310000,"errmsg":"keywords not in content"}`))
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer server.Close()

	err := NewNotifier(server.URL+"/status").Notify(context.Background(), "x")
	require.ErrorIs(t, err, ErrNotify)
	err = NewNotifier(server.URL+"/code").Notify(context.Background(), "x")
	require.ErrorIs(t, err, ErrNotify)
	err = NewNotifier(server.URL+"/body").Notify(context.Background(), "x")
	require.Error(t, err)
}
