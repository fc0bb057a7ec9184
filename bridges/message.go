// Package bridges defines the message contract between the application and
// the sandbox execution host, and a WebSocket transport carrying it as JSON
// frames. The protocol is the sole coupling between the two sides; neither
// reaches into the other's state.
package bridges

// Kind discriminates protocol messages.
type Kind string

// Application to host.
const (
	KindInit        Kind = "INIT"
	KindRunCode     Kind = "RUN_CODE"
	KindStop        Kind = "STOP"
	KindInputUpdate Kind = "INPUT_UPDATE"
)

// Host to application.
const (
	KindStatus            Kind = "STATUS"
	KindPinUpdate         Kind = "PIN_UPDATE"
	KindOutput            Kind = "OUTPUT"
	KindError             Kind = "ERROR"
	KindExecutionComplete Kind = "EXECUTION_COMPLETE"
	KindStopped           Kind = "STOPPED"
)

// Status values carried by STATUS messages. The protocol only reports
// lifecycle transitions; the running state is observable through
// PIN_UPDATE/OUTPUT traffic, not STATUS.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Message is one protocol frame. Pin and Value are pointers so that pin 0
// and level 0 survive omitempty.
type Message struct {
	Type   Kind   `json:"type"`
	Code   string `json:"code,omitempty"`
	Pin    *int   `json:"pin,omitempty"`
	Value  *int   `json:"value,omitempty"`
	Status Status `json:"status,omitempty"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func Init() Message {
	return Message{Type: KindInit}
}

func RunCode(code string) Message {
	return Message{Type: KindRunCode, Code: code}
}

func Stop() Message {
	return Message{Type: KindStop}
}

func InputUpdate(pin, value int) Message {
	return Message{Type: KindInputUpdate, Pin: &pin, Value: &value}
}

func StatusUpdate(status Status) Message {
	return Message{Type: KindStatus, Status: status}
}

func PinUpdate(pin, value int) Message {
	return Message{Type: KindPinUpdate, Pin: &pin, Value: &value}
}

func Output(output string) Message {
	return Message{Type: KindOutput, Output: output}
}

func Error(err string) Message {
	return Message{Type: KindError, Error: err}
}

func ExecutionComplete() Message {
	return Message{Type: KindExecutionComplete}
}

func Stopped() Message {
	return Message{Type: KindStopped}
}
