package bridges

import (
	"encoding/json"
	"testing"
)

func TestMessageEncoding(t *testing.T) {
	// zero pin and zero level must survive encoding
	data, err := json.Marshal(InputUpdate(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"INPUT_UPDATE","pin":0,"value":0}` {
		t.Fatalf("got %s", data)
	}

	data, err = json.Marshal(Init())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"INIT"}` {
		t.Fatalf("got %s", data)
	}

	var msg Message
	if err := json.Unmarshal([]byte(`{"type":"RUN_CODE","code":"print(1)"}`), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != KindRunCode || msg.Code != "print(1)" {
		t.Fatalf("got %+v", msg)
	}
}
