package simulation

import (
	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/geometry"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The engine actor speaks protobuf well-known types:
//
//	*emptypb.Empty          advance one frame
//	*wrapperspb.UInt32Value re-initialize with that many particles
//	*structpb.Struct        partial Config update, keyed by JSON field name

// NewTick asks the engine actor to advance one displayed frame.
func NewTick() *emptypb.Empty { return &emptypb.Empty{} }

// NewReset asks the engine actor to discard its particles and create count new ones.
func NewReset(count int) *wrapperspb.UInt32Value {
	if count < 0 {
		count = 0
	}
	return wrapperspb.UInt32(uint32(count))
}

// NewTuning builds a partial Config update, e.g. {"damping": 0.999}.
func NewTuning(values map[string]interface{}) (*structpb.Struct, error) {
	return structpb.NewStruct(values)
}

// Snapshot is what the engine actor hands to the renderer after every frame.
// It owns its slices: the engine keeps mutating its own state after sending it.
type Snapshot struct {
	Frame           uint64
	Population      int
	Positions       []geometry.Vector2D
	Links           []Link
	ConnectionCount int
}
