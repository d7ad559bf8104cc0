package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// DecodeState unmarshals data into the State variant named by kind.
func DecodeState(kind Kind, data []byte) (State, error) {
	var (
		s   State
		err error
	)
	switch kind {
	case KindLinearScan:
		s, err = decodeAs[LinearScanState](data)
	case KindRangeSearch:
		s, err = decodeAs[RangeSearchState](data)
	case KindCompareExchange:
		s, err = decodeAs[CompareExchangeState](data)
	case KindMerge:
		s, err = decodeAs[MergeState](data)
	case KindPartition:
		s, err = decodeAs[PartitionState](data)
	case KindHeap:
		s, err = decodeAs[HeapState](data)
	case KindBucket:
		s, err = decodeAs[BucketState](data)
	case KindGraphTraversal:
		s, err = decodeAs[GraphTraversalState](data)
	case KindShortestPath:
		s, err = decodeAs[ShortestPathState](data)
	case KindMst:
		s, err = decodeAs[MstState](data)
	case KindMatrix:
		s, err = decodeAs[MatrixState](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s state: %w", kind, err)
	}
	return s, nil
}

func decodeAs[T State](data []byte) (State, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

type stepJSON struct {
	Index   int             `json:"index"`
	Phase   Phase           `json:"phase"`
	Kind    Kind            `json:"kind"`
	State   json.RawMessage `json:"state"`
	Message string          `json:"message"`
}

// MarshalJSON writes the state together with its kind so the step can be
// decoded again.
func (s Step) MarshalJSON() ([]byte, error) {
	out := stepJSON{Index: s.Index, Phase: s.Phase, Message: s.Message, State: json.RawMessage("null")}
	if s.State != nil {
		data, err := json.Marshal(s.State)
		if err != nil {
			return nil, err
		}
		out.Kind = s.State.Kind()
		out.State = data
	}
	return json.Marshal(out)
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var in stepJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Step{Index: in.Index, Phase: in.Phase, Message: in.Message}
	if in.Kind == "" {
		return nil
	}
	st, err := DecodeState(in.Kind, in.State)
	if err != nil {
		return err
	}
	s.State = st
	return nil
}

// UnmarshalJSON reads null back as +Inf.
func (d *Distances) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil && bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = nil
		return nil
	}
	out := make(Distances, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = *v
	}
	*d = out
	return nil
}
