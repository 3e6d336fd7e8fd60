package marketplace

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Profile and job records arrive from collaborators as loosely-typed
// payloads where almost every field may be missing. Decoding is weakly
// typed on purpose: absent fields default to zero values, numbers may be
// encoded as strings, and unknown keys are ignored.

func newDecoder(result any) (*mapstructure.Decoder, error) {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	return mapstructure.NewDecoder(cfg)
}

// DecodeCandidates converts a loosely-typed list payload into a candidate
// collection.
func DecodeCandidates(payload any) (*Candidates, error) {
	var items []*Candidate
	decoder, err := newDecoder(&items)
	if err != nil {
		return nil, fmt.Errorf("building candidate decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("decoding candidates: %w", err)
	}
	return &Candidates{Items: items}, nil
}

// DecodeJob converts a loosely-typed payload into a job record.
func DecodeJob(payload any) (*Job, error) {
	var job *Job
	decoder, err := newDecoder(&job)
	if err != nil {
		return nil, fmt.Errorf("building job decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("decoding job: %w", err)
	}
	if job == nil {
		job = &Job{}
	}
	return job, nil
}

// DecodeJobs converts a loosely-typed list payload into a jobs collection.
func DecodeJobs(payload any) (*Jobs, error) {
	var items []*Job
	decoder, err := newDecoder(&items)
	if err != nil {
		return nil, fmt.Errorf("building jobs decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("decoding jobs: %w", err)
	}
	return &Jobs{Items: items}, nil
}
