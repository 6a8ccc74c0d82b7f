package normalize

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Decode parses a response body into a dynamic JSON value. An empty body
// decodes to JSON null.
func Decode(body []byte) (*structpb.Value, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return structpb.NewNullValue(), nil
	}
	v := &structpb.Value{}
	if err := protojson.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return v, nil
}

// MustDecode is Decode for literals known to be valid JSON.
func MustDecode(body string) *structpb.Value {
	v, err := Decode([]byte(body))
	if err != nil {
		panic(err)
	}
	return v
}
