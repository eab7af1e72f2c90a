/*
Package server implements msgpack IPC for the completion engine.

The server reads binary msgpack requests from stdin and writes responses
to stdout, one message per request, processed synchronously with timing
information included. It is the process boundary an editor host talks to
when it does not embed the engine in-process.

# IPC

Every request carries an id, an op, and op-specific fields:

	{"id": "req_001", "op": "complete", "p": "HAL_GP", "lang": "c", "l": 10}

The server answers with ranked suggestions:

	{"id": "req_001", "s": [{"w": "HAL_GPIO_Init", "k": "function", "s": 92}], "c": 1, "t": 130}

The "context" op takes a raw buffer and cursor offset instead of a
pre-extracted prefix and derives line, column, and prefix on the server
side. "load" warms a language corpus ahead of time, "status" reports the
loaded languages and the advisory memory estimate.

Well-formed requests that are invalid (unknown op, missing fields,
over-long prefix) fail individually with an {"id", "e", "c"} error
response and the session keeps serving. A stream-level msgpack decode
failure ends the session: message boundaries cannot be trusted past a
corrupt frame.
*/
package server

// Request is the envelope for every incoming message.
type Request struct {
	ID       string `msgpack:"id"`
	Op       string `msgpack:"op"` // "complete", "context", "load", "status"
	Prefix   string `msgpack:"p,omitempty"`
	Language string `msgpack:"lang,omitempty"`
	Limit    int    `msgpack:"l,omitempty"`
	Text     string `msgpack:"text,omitempty"` // "context" only
	Cursor   int    `msgpack:"cur,omitempty"`  // "context" only
}

// Suggestion is one ranked completion on the wire.
type Suggestion struct {
	Text        string `msgpack:"w"`
	Kind        string `msgpack:"k,omitempty"`
	Description string `msgpack:"d,omitempty"`
	Score       int    `msgpack:"s"`
}

// CompleteResponse answers "complete" and "context" requests.
type CompleteResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	Prefix      string       `msgpack:"p,omitempty"` // derived, "context" only
	Line        int          `msgpack:"ln,omitempty"`
	Column      int          `msgpack:"col,omitempty"`
	TimeTaken   int64        `msgpack:"t"` // microseconds
}

// LoadResponse answers "load" requests.
type LoadResponse struct {
	ID       string `msgpack:"id"`
	Language string `msgpack:"lang"`
	Entries  int    `msgpack:"n"`
}

// StatusResponse answers "status" requests.
type StatusResponse struct {
	ID          string   `msgpack:"id"`
	Languages   []string `msgpack:"langs"`
	MemoryBytes int      `msgpack:"mem"`
}

// ErrorResponse reports a per-request failure.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
