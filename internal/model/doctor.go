package model

// Doctor is a static roster entry. The roster is seeded reference data;
// there is no doctor lifecycle beyond it.
type Doctor struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// Public strips the credential for responses.
func (d *Doctor) Public() map[string]string {
	return map[string]string{
		"username":       d.Username,
		"name":           d.Name,
		"specialization": d.Specialization,
	}
}
