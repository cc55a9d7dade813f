package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFound_SendsEnvelope(t *testing.T) {
	var gotBody string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	n := New(slog.New(slog.DiscardHandler), true, srv.URL, "anon-key")
	householdID := uuid.New()
	actorID := uuid.New()

	n.MatchFound(context.Background(), householdID, actorID, "Luna")

	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Contains(t, gotBody, `"type":"match"`)
	assert.Contains(t, gotBody, householdID.String())
	assert.Contains(t, gotBody, actorID.String())
	assert.Contains(t, gotBody, `"name":"Luna"`)
}

func TestMemberJoined_SendsEnvelope(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
	}))
	defer srv.Close()

	n := New(slog.New(slog.DiscardHandler), true, srv.URL, "anon-key")
	n.MemberJoined(context.Background(), uuid.New(), uuid.New(), "Sam")

	assert.Contains(t, gotBody, `"type":"new_member"`)
	assert.Contains(t, gotBody, `"member_name":"Sam"`)
}

func TestSend_DisabledIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected when disabled")
	}))
	defer srv.Close()

	n := New(slog.New(slog.DiscardHandler), false, srv.URL, "anon-key")
	n.MatchFound(context.Background(), uuid.New(), uuid.New(), "Luna")
}

func TestSend_EmptyURLIsNoop(t *testing.T) {
	n := New(slog.New(slog.DiscardHandler), true, "", "anon-key")
	// Must not panic or attempt a request.
	n.MatchFound(context.Background(), uuid.New(), uuid.New(), "Luna")
}

func TestSend_ServerErrorDoesNotPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := New(slog.New(slog.DiscardHandler), true, srv.URL, "anon-key")
	// Fire and forget: no error surface at all.
	n.MatchFound(context.Background(), uuid.New(), uuid.New(), "Luna")
}
