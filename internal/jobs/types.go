package jobs

type JobType string

const (
	JobSendRegistrationConfirmation JobType = "registration.confirmation"
	JobSendOrderConfirmation        JobType = "order.confirmation"
)

// check the job type is a known constant
func (t JobType) IsValid() bool {
	switch t {
	case JobSendRegistrationConfirmation, JobSendOrderConfirmation:
		return true
	default:
		return false
	}
}
