package handler

import "encoding/json"

// Invocation transports deliver the checkout body in three shapes: a plain
// JSON object, a double-encoded JSON string, or an envelope wrapping the
// JSON under a "body" field. Each strategy either yields the object bytes or
// falls through to the next one.
type bodyStrategy func(data []byte) ([]byte, bool)

var bodyStrategies = []bodyStrategy{
	parseObject,
	parseEncodedString,
	parseEnvelope,
}

// decodeRequestBody tries each strategy in order and unmarshals the first
// representation that parses. When nothing parses, v is left at its zero
// value so that field validation produces the error instead.
func decodeRequestBody(data []byte, v interface{}) {
	for _, strategy := range bodyStrategies {
		raw, ok := strategy(data)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, v); err == nil {
			return
		}
	}
}

func parseObject(data []byte) ([]byte, bool) {
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	// An envelope {"body":"..."} is an object too; let parseEnvelope unwrap
	// it when the inner payload is what parses.
	var envelope struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Body != "" {
		return nil, false
	}
	return data, true
}

func parseEncodedString(data []byte) ([]byte, bool) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil, false
	}
	return []byte(s), true
}

func parseEnvelope(data []byte) ([]byte, bool) {
	var envelope struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Body == "" {
		return nil, false
	}
	return []byte(envelope.Body), true
}
