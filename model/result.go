package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ValueType is the discriminant of the possible expression query
// result shapes.
type ValueType string

const (
	// ValVector identifies an instant vector result.
	ValVector ValueType = "vector"
	// ValMatrix identifies a range vector result.
	ValMatrix ValueType = "matrix"
	// ValScalar identifies a scalar result.
	ValScalar ValueType = "scalar"
)

// Sample is one time series' value at a single instant.
type Sample struct {
	Metric Metric     `json:"metric"`
	Value  SamplePair `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler. The value field is
// required; an entry without one (e.g. a matrix-shaped entry inside a
// vector payload) is a shape mismatch, not an empty sample.
func (s *Sample) UnmarshalJSON(b []byte) error {
	var aux struct {
		Metric Metric      `json:"metric"`
		Value  *SamplePair `json:"value"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return asDecodeErr(err, "sample")
	}
	if aux.Value == nil {
		return errors.Wrap(ErrMalformedPayload, "sample is missing its value")
	}
	*s = Sample{Metric: aux.Metric, Value: *aux.Value}
	return nil
}

// SampleStream is one time series' values over an interval, ordered by
// ascending timestamp. The server guarantees the ordering; decoding
// preserves it as-is and never re-sorts.
type SampleStream struct {
	Metric Metric       `json:"metric"`
	Values []SamplePair `json:"values"`
}

// UnmarshalJSON implements json.Unmarshaler. The values field is
// required; an entry without one (e.g. a vector-shaped entry inside a
// matrix payload) is a shape mismatch, not an empty stream.
func (s *SampleStream) UnmarshalJSON(b []byte) error {
	var aux struct {
		Metric Metric        `json:"metric"`
		Values *[]SamplePair `json:"values"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return asDecodeErr(err, "sample stream")
	}
	if aux.Values == nil {
		return errors.Wrap(ErrMalformedPayload, "sample stream is missing its values")
	}
	*s = SampleStream{Metric: aux.Metric, Values: *aux.Values}
	return nil
}

// Vector is the result of an instant query: a list of series with one
// sample each.
type Vector []Sample

// Matrix is the result of a range query: a list of series with a
// sample stream each.
type Matrix []SampleStream

// QueryResult is the tagged union of expression query results. It
// holds exactly one of a vector, a matrix or a scalar, discriminated
// by the wire resultType field. The zero value holds nothing; decode
// into it or use one of the constructors.
type QueryResult struct {
	vtype  ValueType
	vector Vector
	matrix Matrix
	scalar *SamplePair
}

// VectorResult returns a QueryResult holding an instant vector.
func VectorResult(v Vector) QueryResult {
	return QueryResult{vtype: ValVector, vector: v}
}

// MatrixResult returns a QueryResult holding a range vector.
func MatrixResult(m Matrix) QueryResult {
	return QueryResult{vtype: ValMatrix, matrix: m}
}

// ScalarResult returns a QueryResult holding a scalar sample.
func ScalarResult(s SamplePair) QueryResult {
	return QueryResult{vtype: ValScalar, scalar: &s}
}

// Type returns the discriminant of the stored variant.
func (r *QueryResult) Type() ValueType { return r.vtype }

// Vector returns the stored instant vector. The second return value is
// false when the result holds a different variant.
func (r *QueryResult) Vector() (Vector, bool) {
	if r.vtype != ValVector {
		return nil, false
	}
	return r.vector, true
}

// Matrix returns the stored range vector. The second return value is
// false when the result holds a different variant.
func (r *QueryResult) Matrix() (Matrix, bool) {
	if r.vtype != ValMatrix {
		return nil, false
	}
	return r.matrix, true
}

// Scalar returns the stored scalar sample. The second return value is
// false when the result holds a different variant.
func (r *QueryResult) Scalar() (SamplePair, bool) {
	if r.vtype != ValScalar || r.scalar == nil {
		return SamplePair{}, false
	}
	return *r.scalar, true
}

// IsVector reports whether the result holds an instant vector.
func (r *QueryResult) IsVector() bool { return r.vtype == ValVector }

// IsMatrix reports whether the result holds a range vector.
func (r *QueryResult) IsMatrix() bool { return r.vtype == ValMatrix }

// IsScalar reports whether the result holds a scalar.
func (r *QueryResult) IsScalar() bool { return r.vtype == ValScalar }

// Empty reports whether the query returned no data at all, regardless
// of the variant. Scalars always carry a value.
func (r *QueryResult) Empty() bool {
	switch r.vtype {
	case ValVector:
		return len(r.vector) == 0
	case ValMatrix:
		return len(r.matrix) == 0
	case ValScalar:
		return r.scalar == nil
	}
	return true
}

// UnmarshalJSON decodes the {resultType, result} wire object. The
// discriminant and the payload shape must agree; a mismatch is an
// error, never a silent default.
func (r *QueryResult) UnmarshalJSON(b []byte) error {
	var env struct {
		Type   *ValueType      `json:"resultType"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return errors.Wrap(ErrMalformedPayload, "query result is not a JSON object")
	}
	if env.Type == nil || len(env.Result) == 0 {
		return errors.Wrap(ErrMalformedPayload, "query result is missing resultType or result")
	}

	switch *env.Type {
	case ValVector:
		var v Vector
		if err := json.Unmarshal(env.Result, &v); err != nil {
			return asDecodeErr(err, "vector")
		}
		*r = VectorResult(v)
	case ValMatrix:
		var m Matrix
		if err := json.Unmarshal(env.Result, &m); err != nil {
			return asDecodeErr(err, "matrix")
		}
		*r = MatrixResult(m)
	case ValScalar:
		var s SamplePair
		if err := json.Unmarshal(env.Result, &s); err != nil {
			return asDecodeErr(err, "scalar")
		}
		*r = ScalarResult(s)
	default:
		return errors.Wrapf(ErrUnknownResultType, "%q", *env.Type)
	}
	return nil
}

// MarshalJSON encodes the stored variant back into the {resultType,
// result} wire object.
func (r QueryResult) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch r.vtype {
	case ValVector:
		v := r.vector
		if v == nil {
			v = Vector{}
		}
		payload = v
	case ValMatrix:
		m := r.matrix
		if m == nil {
			m = Matrix{}
		}
		payload = m
	case ValScalar:
		if r.scalar == nil {
			return nil, errors.Wrap(ErrMalformedPayload, "scalar result holds no sample")
		}
		payload = r.scalar
	default:
		return nil, errors.Wrapf(ErrUnknownResultType, "%q", r.vtype)
	}
	return json.Marshal(struct {
		Type   ValueType   `json:"resultType"`
		Result interface{} `json:"result"`
	}{r.vtype, payload})
}

// asDecodeErr keeps errors produced by this package's decoders intact
// and maps everything else (JSON type mismatches between discriminant
// and payload) to ErrMalformedPayload.
func asDecodeErr(err error, shape string) error {
	if IsDecodeErr(err) {
		return err
	}
	return errors.Wrapf(ErrMalformedPayload, "result does not decode as a %s: %s", shape, err)
}

// QueryData is the "data" object of an expression query response: the
// result variant plus the optional execution statistics.
type QueryData struct {
	Result QueryResult
	Stats  *Stats
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *QueryData) UnmarshalJSON(b []byte) error {
	if err := d.Result.UnmarshalJSON(b); err != nil {
		return err
	}
	var aux struct {
		Stats *Stats `json:"stats"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return asDecodeErr(err, "stats object")
	}
	d.Stats = aux.Stats
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d QueryData) MarshalJSON() ([]byte, error) {
	rb, err := json.Marshal(d.Result)
	if err != nil {
		return nil, err
	}
	if d.Stats == nil {
		return rb, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(rb, &obj); err != nil {
		return nil, err
	}
	sb, err := json.Marshal(d.Stats)
	if err != nil {
		return nil, err
	}
	obj["stats"] = sb
	return json.Marshal(obj)
}
