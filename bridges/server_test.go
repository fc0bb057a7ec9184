package bridges

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/picosim/picosim/logs"
	"github.com/reusee/dscope"
	"golang.org/x/net/websocket"
)

type fakeSandbox struct {
	sent   chan Message
	events chan Message
}

var _ Sandbox = new(fakeSandbox)

func (f *fakeSandbox) Send(msg Message) {
	f.sent <- msg
}

func (f *fakeSandbox) Events() <-chan Message {
	return f.events
}

func withServer(t *testing.T, fn func(url string, sandbox *fakeSandbox)) {
	t.Helper()
	dscope.New(
		new(logs.Module),
	).Fork(
		dscope.Provide(logs.Writer(io.Discard)),
	).Call(func(
		logger logs.Logger,
	) {
		sandbox := &fakeSandbox{
			sent:   make(chan Message, 16),
			events: make(chan Message, 16),
		}
		ts := httptest.NewServer(NewServer(logger, sandbox).Handler())
		defer ts.Close()
		fn("ws"+strings.TrimPrefix(ts.URL, "http"), sandbox)
	})
}

func recvSent(t *testing.T, sandbox *fakeSandbox) Message {
	t.Helper()
	select {
	case msg := <-sandbox.sent:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for sandbox message")
		return Message{}
	}
}

func TestServerForwardsFrames(t *testing.T) {
	withServer(t, func(url string, sandbox *fakeSandbox) {
		conn, err := websocket.Dial(url, "", "http://localhost/")
		if err != nil {
			t.Fatal(err)
		}
		defer conn.Close()

		// client to host
		if err := websocket.JSON.Send(conn, RunCode("print(1)")); err != nil {
			t.Fatal(err)
		}
		msg := recvSent(t, sandbox)
		if msg.Type != KindRunCode || msg.Code != "print(1)" {
			t.Fatalf("got %+v", msg)
		}

		// host to client, zero pin intact
		sandbox.events <- PinUpdate(0, 1)
		var got Message
		if err := websocket.JSON.Receive(conn, &got); err != nil {
			t.Fatal(err)
		}
		if got.Type != KindPinUpdate || *got.Pin != 0 || *got.Value != 1 {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestServerRefusesSecondClient(t *testing.T) {
	withServer(t, func(url string, sandbox *fakeSandbox) {
		first, err := websocket.Dial(url, "", "http://localhost/")
		if err != nil {
			t.Fatal(err)
		}
		defer first.Close()
		// wait until the first client holds the bridge
		if err := websocket.JSON.Send(first, Init()); err != nil {
			t.Fatal(err)
		}
		recvSent(t, sandbox)

		second, err := websocket.Dial(url, "", "http://localhost/")
		if err != nil {
			t.Fatal(err)
		}
		defer second.Close()
		var msg Message
		if err := websocket.JSON.Receive(second, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != KindError {
			t.Fatalf("got %+v", msg)
		}
	})
}

func TestServerStopsRunOnDisconnect(t *testing.T) {
	withServer(t, func(url string, sandbox *fakeSandbox) {
		conn, err := websocket.Dial(url, "", "http://localhost/")
		if err != nil {
			t.Fatal(err)
		}
		if err := websocket.JSON.Send(conn, RunCode("x = 1")); err != nil {
			t.Fatal(err)
		}
		recvSent(t, sandbox)

		conn.Close()
		msg := recvSent(t, sandbox)
		if msg.Type != KindStop {
			t.Fatalf("got %+v", msg)
		}
	})
}
