package dto

import "encoding/json"

// Optional is a request field that distinguishes "absent from the body" from
// "explicitly null". Set stays false for absent fields because UnmarshalJSON
// only runs for keys present in the payload; an explicit null sets Set with a
// nil Value, which update handling treats as clearing the column.
type Optional[T any] struct {
	Value *T
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
