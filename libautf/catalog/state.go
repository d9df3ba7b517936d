package catalog

import (
	"github.com/gogo/protobuf/proto"
)

// CatalogState is the catalog header record.
type CatalogState struct {
	MajorVers int32  `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers int32  `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	TotalReps uint64 `protobuf:"varint,3,opt,name=total_reps,json=totalReps,proto3" json:"total_reps,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// RunState tracks the progress of one enumeration run.
type RunState struct {
	// Number of representatives stored for this run
	NumReps uint64 `protobuf:"varint,1,opt,name=num_reps,json=numReps,proto3" json:"num_reps,omitempty"`

	// Word key of the enumerator position; every candidate before it has been processed.
	Checkpoint []byte `protobuf:"bytes,2,opt,name=checkpoint,proto3" json:"checkpoint,omitempty"`

	// Set once the run has completed.
	Done bool `protobuf:"varint,3,opt,name=done,proto3" json:"done,omitempty"`

	// Set when Checkpoint holds a position (distinguishes the empty word from no position).
	HasCheckpoint bool `protobuf:"varint,4,opt,name=has_checkpoint,json=hasCheckpoint,proto3" json:"has_checkpoint,omitempty"`
}

func (m *RunState) Reset()         { *m = RunState{} }
func (m *RunState) String() string { return proto.CompactTextString(m) }
func (*RunState) ProtoMessage()    {}

func init() {
	proto.RegisterType((*CatalogState)(nil), "autf.catalog.CatalogState")
	proto.RegisterType((*RunState)(nil), "autf.catalog.RunState")
}
