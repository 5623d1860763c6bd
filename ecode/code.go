package ecode

// Error codes
const (
	OK                  = 0
	InvalidArgumentCode = -201
	ParseCode           = -301
	ServerErr           = -500
	TransportCode       = -502
	CircuitOpenCode     = -503
)

var messages = map[int]string{
	OK:                  "ok",
	InvalidArgumentCode: "invalid argument",
	ParseCode:           "parse error",
	ServerErr:           "internal error",
	TransportCode:       "transport error",
	CircuitOpenCode:     "service unavailable",
}

// Text returns the message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}
