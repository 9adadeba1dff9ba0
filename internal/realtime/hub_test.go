package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

func dial(t *testing.T, hub *Hub, topic, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, topic)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}

	return websocket.DefaultDialer.Dial(url, header)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))
	return message
}

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub([]string{testOrigin})
	topic := ProjectTopic(7)

	conn, _, err := dial(t, hub, topic, testOrigin)
	require.NoError(t, err)
	defer conn.Close()

	welcome := readMessage(t, conn)
	assert.Equal(t, "connected", welcome.Type)
	assert.Equal(t, "project:7", welcome.Topic)
	assert.Equal(t, 1, hub.Subscribers(topic))

	hub.Publish(GlobalTopic, []types.Region{types.RegionUsersTable})
	hub.Publish(topic, []types.Region{types.RegionMemberList, types.RegionAddMemberCandidates})

	message := readMessage(t, conn)
	assert.Equal(t, "invalidate", message.Type)
	assert.Equal(t, []types.Region{types.RegionMemberList, types.RegionAddMemberCandidates}, message.Regions)
}

func TestServeRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub([]string{testOrigin})

	_, resp, err := dial(t, hub, GlobalTopic, "http://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.Subscribers(GlobalTopic))
}

func TestSubscriberRemovedOnClose(t *testing.T) {
	hub := NewHub([]string{testOrigin})

	conn, _, err := dial(t, hub, GlobalTopic, testOrigin)
	require.NoError(t, err)
	readMessage(t, conn)
	conn.Close()

	assert.Eventually(t, func() bool {
		return hub.Subscribers(GlobalTopic) == 0
	}, 5*time.Second, 10*time.Millisecond)
}
