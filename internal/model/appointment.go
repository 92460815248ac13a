package model

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusApproved  RequestStatus = "Approved"
	RequestStatusRejected  RequestStatus = "Rejected"
	RequestStatusCancelled RequestStatus = "Cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s RequestStatus) Terminal() bool {
	return s != RequestStatusPending
}

type AppointmentStatus string

const (
	AppointmentStatusApproved  AppointmentStatus = "Approved"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// AppointmentRequest is a patient-submitted ask, pre-approval.
type AppointmentRequest struct {
	RequestID       string        `json:"requestId"`
	PatientUserID   string        `json:"patientUserId"`
	PatientName     string        `json:"patientName"`
	PatientEmail    string        `json:"patientEmail"`
	PatientMobile   string        `json:"patientMobile"`
	DoctorUsername  string        `json:"doctorUsername"`
	DoctorName      string        `json:"doctorName"`
	Specialization  string        `json:"specialization"`
	Reason          string        `json:"reason"`
	Notes           string        `json:"notes,omitempty"`
	PreferredDates  []string      `json:"preferredDates"`
	PreferredTimes  []string      `json:"preferredTimes"`
	Status          RequestStatus `json:"status"`
	RequestDate     string        `json:"requestDate"`
	RequestTime     string        `json:"requestTime"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	RejectionDate   string        `json:"rejectionDate,omitempty"`
}

// Appointment is the approved, scheduled artifact derived from a request.
// It carries its own identifier plus a back-reference to the originating
// request.
type Appointment struct {
	AppointmentID      string            `json:"appointmentId"`
	RequestID          string            `json:"requestId"`
	PatientUserID      string            `json:"patientUserId"`
	PatientName        string            `json:"patientName"`
	PatientEmail       string            `json:"patientEmail"`
	PatientMobile      string            `json:"patientMobile"`
	DoctorUsername     string            `json:"doctorUsername"`
	DoctorName         string            `json:"doctorName"`
	Specialization     string            `json:"specialization"`
	Reason             string            `json:"reason"`
	Notes              string            `json:"notes,omitempty"`
	AppointmentDate    string            `json:"appointmentDate"`
	AppointmentTime    string            `json:"appointmentTime"`
	Status             AppointmentStatus `json:"status"`
	ApprovalDate       string            `json:"approvalDate"`
	AdminNotes         string            `json:"adminNotes,omitempty"`
	CancellationReason string            `json:"cancellationReason,omitempty"`
	CancellationDate   string            `json:"cancellationDate,omitempty"`
	CompletionNotes    string            `json:"completionNotes,omitempty"`
	CompletionDate     string            `json:"completionDate,omitempty"`
}

type SubmitRequestRequest struct {
	PatientUserID  string   `json:"patientUserId" binding:"required"`
	DoctorUsername string   `json:"doctorUsername" binding:"required"`
	Reason         string   `json:"reason" binding:"required"`
	Notes          string   `json:"notes"`
	PreferredDates []string `json:"preferredDates" binding:"required,min=1,dive,dateymd"`
	PreferredTimes []string `json:"preferredTimes" binding:"required,min=1,dive,clocktime"`
}

type ApproveRequestRequest struct {
	AdminNotes string `json:"adminNotes"`
	ChosenDate string `json:"chosenDate" binding:"omitempty,dateymd"`
	ChosenTime string `json:"chosenTime" binding:"omitempty,clocktime"`
}

type RejectRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type CompleteAppointmentRequest struct {
	Notes string `json:"notes"`
}
