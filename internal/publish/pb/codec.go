package pb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name is the grpc content-subtype this codec registers under. The client
// stub selects it explicitly via grpc.CallContentSubtype.
const Name = "json"

// jsonCodec marshals gRPC messages as JSON rather than protobuf wire
// format. Empty, Level, and Summary are plain structs, not
// protoreflect.Message implementations, so the default proto codec cannot
// handle them; registering a codec is the supported grpc-go extension
// point for exactly this case.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
