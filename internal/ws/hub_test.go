package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_QueuesJSON(t *testing.T) {
	h := NewHub()
	defer h.Stop()

	h.Publish(map[string]interface{}{"type": "stock_update", "action": "sale_recorded"})

	select {
	case msg := <-h.Broadcast:
		var got map[string]string
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "stock_update", got["type"])
		assert.Equal(t, "sale_recorded", got["action"])
	case <-time.After(time.Second):
		t.Fatal("event was not broadcast")
	}
}

func TestPublish_NilHub(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(map[string]string{"type": "stock_update"}) })
}

func TestPublish_UnencodablePayloadIsDropped(t *testing.T) {
	h := NewHub()
	defer h.Stop()

	h.Publish(map[string]interface{}{"bad": make(chan int)})

	select {
	case <-h.Broadcast:
		t.Fatal("unexpected broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRun_ReturnsOnStop(t *testing.T) {
	h := NewHub()
	finished := make(chan struct{})

	go func() {
		h.Run()
		close(finished)
	}()

	h.Publish(map[string]string{"type": "stock_update"})
	h.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.Zero(t, h.clientCount())
}
