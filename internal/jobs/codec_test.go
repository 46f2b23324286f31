package jobs_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nexfest/festhub/internal/jobs"
)

func TestEncodeDecodeRegistrationConfirmation(t *testing.T) {
	in := jobs.RegistrationConfirmationPayload{
		RegistrationID: "r-1",
		EventID:        "e-1",
		Email:          "asha@example.com",
		Name:           "Asha",
		RequestedAt:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := jobs.EncodePayload(jobs.JobSendRegistrationConfirmation, in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := jobs.DecodePayload(jobs.JobSendRegistrationConfirmation, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, ok := out.(jobs.RegistrationConfirmationPayload)
	if !ok {
		t.Fatalf("decode returned %T, want RegistrationConfirmationPayload", out)
	}

	if got != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestEncodeRejectsMismatchedPayload(t *testing.T) {
	_, err := jobs.EncodePayload(jobs.JobSendOrderConfirmation, jobs.RegistrationConfirmationPayload{})

	if !errors.Is(err, jobs.ErrPayloadTypeMismatch) {
		t.Fatalf("got %v, want ErrPayloadTypeMismatch", err)
	}
}

func TestEncodeRejectsUnknownType(t *testing.T) {
	_, err := jobs.EncodePayload(jobs.JobType("mystery"), struct{}{})

	if !errors.Is(err, jobs.ErrInvalidJobType) {
		t.Fatalf("got %v, want ErrInvalidJobType", err)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		jobType jobs.JobType
		raw     []byte
		wantErr error
	}{
		{name: "unknown type", jobType: jobs.JobType("mystery"), raw: []byte("{}"), wantErr: jobs.ErrInvalidJobType},
		{name: "empty payload", jobType: jobs.JobSendOrderConfirmation, raw: nil, wantErr: jobs.ErrInvalidJobPayload},
		{name: "garbage payload", jobType: jobs.JobSendOrderConfirmation, raw: []byte("{"), wantErr: jobs.ErrInvalidJobPayload},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jobs.DecodePayload(tc.jobType, tc.raw)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestJobTypeIsValid(t *testing.T) {
	if !jobs.JobSendRegistrationConfirmation.IsValid() || !jobs.JobSendOrderConfirmation.IsValid() {
		t.Fatal("known job types must be valid")
	}

	if jobs.JobType("").IsValid() || jobs.JobType("mystery").IsValid() {
		t.Fatal("unknown job types must be invalid")
	}
}
