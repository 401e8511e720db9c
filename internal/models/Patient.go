package models

// PatientSummary is a read-only snapshot of a connection-shared patient as
// returned by the vendor. It is never mutated locally.
type PatientSummary struct {
	ID         string  `json:"id"`
	PatientID  string  `json:"patientId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	TargetLow  int     `json:"targetLow"`
	TargetHigh int     `json:"targetHigh"`
	Latest     Reading `json:"latest"`
}
