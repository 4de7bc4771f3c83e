package tasks_dto

import "encoding/json"

// Optional tracks JSON field presence, so an explicit null can be told apart
// from an omitted field. Set means the field appeared in the request body,
// Valid means it carried a non-null value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Valid = false

		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}

	o.Valid = true

	return nil
}

// Ptr returns the carried value as a nullable pointer, nil for an explicit
// null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}

	value := o.Value

	return &value
}
