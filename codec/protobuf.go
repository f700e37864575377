package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto.Message values. It needs a constructor for the
// concrete message type because Decode must allocate one to unmarshal into.
type Protobuf[T proto.Message] struct {
	new func() T // e.g. func() *mypb.SavedList { return &mypb.SavedList{} }
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
