package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
)

var testLogger = slog.New(slog.DiscardHandler)

// fakeConferenceService returns one canned conference for tests.
type fakeConferenceService struct {
	conference *domain.Conference
	err        error
}

func (f *fakeConferenceService) ListForUser(context.Context, string) ([]*domain.Conference, error) {
	return nil, nil
}

func (f *fakeConferenceService) Create(context.Context, string, domain.ConferenceDraft) (*domain.Conference, error) {
	return nil, nil
}

func (f *fakeConferenceService) Update(context.Context, string, string, domain.ConferencePatch) (*domain.Conference, error) {
	return nil, nil
}

func (f *fakeConferenceService) GetByID(context.Context, string) (*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.conference, nil
}

func liveServer(t *testing.T, svc domain.ConferenceService) *httptest.Server {
	t.Helper()
	handler := NewHandler(NewHub(testLogger), svc, testLogger)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /conferences/{id}/live", func(w http.ResponseWriter, r *http.Request) {
		handler.Join(w, r.WithContext(middleware.SetUserID(r.Context(), "user-1")))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestLive_JoinBroadcasts(t *testing.T) {
	svc := &fakeConferenceService{conference: &domain.Conference{ID: "conf-1", Status: domain.StatusLive}}
	srv := liveServer(t, svc)

	first, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/conferences/conf-1/live"), nil)
	require.NoError(t, err)
	defer first.Close()

	// Own join announcement.
	var msg Message
	require.NoError(t, first.ReadJSON(&msg))
	assert.Equal(t, "joined", msg.Type)
	assert.Equal(t, "user-1", msg.UserID)

	second, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/conferences/conf-1/live"), nil)
	require.NoError(t, err)
	defer second.Close()

	// First sees the second join.
	require.NoError(t, first.ReadJSON(&msg))
	assert.Equal(t, "joined", msg.Type)

	chat, err := json.Marshal(Message{Type: "chat", Content: "hello"})
	require.NoError(t, err)
	require.NoError(t, second.WriteMessage(websocket.TextMessage, chat))

	first.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, first.ReadJSON(&msg))
	assert.Equal(t, "chat", msg.Type)
	assert.Equal(t, "hello", msg.Content)
}

func TestLive_JoinThroughMiddlewareChain(t *testing.T) {
	svc := &fakeConferenceService{conference: &domain.Conference{ID: "conf-1", Status: domain.StatusLive}}
	handler := NewHandler(NewHub(testLogger), svc, testLogger)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /conferences/{id}/live", func(w http.ResponseWriter, r *http.Request) {
		handler.Join(w, r.WithContext(middleware.SetUserID(r.Context(), "user-1")))
	})
	// Same wrapping order the server uses. The upgrade must survive
	// every wrapped writer in the chain.
	chain := middleware.Logging(testLogger,
		middleware.Metrics(
			middleware.CORS([]string{"http://localhost:3000"}, mux)))
	srv := httptest.NewServer(chain)
	t.Cleanup(srv.Close)

	header := http.Header{"Origin": []string{"http://localhost:3000"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/conferences/conf-1/live"), header)
	require.NoError(t, err)
	defer conn.Close()

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "joined", msg.Type)
	assert.Equal(t, "user-1", msg.UserID)
}

func TestLive_NotLiveRejected(t *testing.T) {
	svc := &fakeConferenceService{conference: &domain.Conference{ID: "conf-1", Status: domain.StatusPublished}}
	srv := liveServer(t, svc)

	resp, err := http.Get(srv.URL + "/conferences/conf-1/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLive_ConferenceNotFound(t *testing.T) {
	svc := &fakeConferenceService{err: domain.ErrNotFound}
	srv := liveServer(t, svc)

	resp, err := http.Get(srv.URL + "/conferences/missing/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHub_Occupancy(t *testing.T) {
	svc := &fakeConferenceService{conference: &domain.Conference{ID: "conf-1", Status: domain.StatusLive}}
	hub := NewHub(testLogger)
	handler := NewHandler(hub, svc, testLogger)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /conferences/{id}/live", func(w http.ResponseWriter, r *http.Request) {
		handler.Join(w, r.WithContext(middleware.SetUserID(r.Context(), "user-1")))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	assert.Equal(t, 0, hub.Occupancy("conf-1"))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/conferences/conf-1/live"), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Occupancy("conf-1") == 1 }, time.Second, 5*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return hub.Occupancy("conf-1") == 0 }, time.Second, 5*time.Millisecond)
}
