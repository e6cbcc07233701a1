package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_SendEchoAndClose(t *testing.T) {
	up := NewUpgrader(nil)
	received := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := Upgrade(up, w, r, "test")
		if err != nil {
			return
		}
		s.Start(func(msg []byte) {
			received <- string(msg)
			s.CloseWith(websocket.CloseNormalClosure, "session ended")
		})
		assert.NoError(t, s.Send(map[string]string{"type": "snapshot"}))
		<-s.Done()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"snapshot"}`, string(msg))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"search"}`)))

	select {
	case got := <-received:
		assert.Equal(t, `{"type":"search"}`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive message")
	}

	_, _, err = conn.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
	assert.Equal(t, "session ended", closeErr.Text)
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	up := NewUpgrader([]string{"https://app.example"})

	r := httptest.NewRequest(http.MethodGet, "http://api.example/ws", nil)
	r.Header.Set("Origin", "https://app.example")
	assert.True(t, up.CheckOrigin(r))

	r.Header.Set("Origin", "https://evil.example")
	assert.False(t, up.CheckOrigin(r))

	r.Header.Set("Origin", "http://api.example")
	assert.True(t, up.CheckOrigin(r))
}
