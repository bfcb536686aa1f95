package analytics

// Overview is the superadmin dashboard summary.
type Overview struct {
	HospitalsByStatus map[string]int `json:"hospitals_by_status"`
	Doctors           int            `json:"doctors"`
	Parents           int            `json:"parents"`
	Teams             int            `json:"teams"`
}
