package selectsvc

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToSubscribers(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub)
	defer server.Close()

	wsURL := "ws" + server.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(ImproveEvent{RequestID: "r1", Score: 42})

	var got ImproveEvent
	require.NoError(t, conn.ReadJSON(&got))
	require.Equal(t, "r1", got.RequestID)
	require.Equal(t, float64(42), got.Score)
}
