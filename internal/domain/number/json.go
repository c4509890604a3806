package number

import "strconv"

var null = []byte("null")

// MarshalJSON encodes finite values as JSON numbers. JSON has no token for
// infinity, so both Infinite and Undefined values encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind != Finite {
		return null, nil
	}
	return strconv.AppendFloat(nil, v.f, 'f', -1, 64), nil
}

// UnmarshalJSON decodes a JSON number or null. null decodes to Undefined since the
// encoded form does not say which non-finite kind produced it.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*v = Of(f)
	return nil
}
