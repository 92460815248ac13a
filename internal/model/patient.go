package model

// PatientOrigin tags which registration path produced a record. The two
// origins live in separate storage collections; uniqueness on email or
// mobile number is enforced per collection.
type PatientOrigin string

const (
	OriginAdmin  PatientOrigin = "admin"
	OriginPortal PatientOrigin = "portal"
)

// Patient is the unified record for both front-desk and portal
// registrations.
type Patient struct {
	ID                string        `json:"patientId"`
	Origin            PatientOrigin `json:"origin"`
	FullName          string        `json:"fullName"`
	Age               string        `json:"age,omitempty"`
	Gender            string        `json:"gender,omitempty"`
	BloodGroup        string        `json:"bloodGroup,omitempty"`
	Email             string        `json:"email"`
	MobileNumber      string        `json:"mobileNumber"`
	Password          string        `json:"password,omitempty"`
	Address           string        `json:"address,omitempty"`
	City              string        `json:"city,omitempty"`
	State             string        `json:"state,omitempty"`
	ZipCode           string        `json:"zipCode,omitempty"`
	MedicalHistory    string        `json:"medicalHistory,omitempty"`
	Allergies         string        `json:"allergies,omitempty"`
	MedicalConditions string        `json:"medicalConditions,omitempty"`
	EmergencyContact  string        `json:"emergencyContact,omitempty"`
	EmergencyPhone    string        `json:"emergencyPhone,omitempty"`
	RegistrationDate  string        `json:"registrationDate"`
}

type RegisterPatientRequest struct {
	FullName          string `json:"fullName" binding:"required"`
	Age               string `json:"age"`
	Gender            string `json:"gender"`
	BloodGroup        string `json:"bloodGroup"`
	Email             string `json:"email" binding:"required,email"`
	MobileNumber      string `json:"mobileNumber" binding:"required"`
	Password          string `json:"password"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	ZipCode           string `json:"zipCode"`
	MedicalHistory    string `json:"medicalHistory"`
	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medicalConditions"`
	EmergencyContact  string `json:"emergencyContact"`
	EmergencyPhone    string `json:"emergencyPhone"`
}

// UpdatePatientRequest carries the patchable fields; nil means unchanged.
type UpdatePatientRequest struct {
	FullName          *string `json:"fullName"`
	Age               *string `json:"age"`
	Gender            *string `json:"gender"`
	BloodGroup        *string `json:"bloodGroup"`
	Email             *string `json:"email" binding:"omitempty,email"`
	MobileNumber      *string `json:"mobileNumber"`
	Address           *string `json:"address"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	ZipCode           *string `json:"zipCode"`
	MedicalHistory    *string `json:"medicalHistory"`
	Allergies         *string `json:"allergies"`
	MedicalConditions *string `json:"medicalConditions"`
	EmergencyContact  *string `json:"emergencyContact"`
	EmergencyPhone    *string `json:"emergencyPhone"`
}
