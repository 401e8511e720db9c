package libreview

import (
	"time"

	"cgmd/internal/models"
)

// Vendor wire types. Field names follow the LibreLinkUp API, including its
// mixed-case measurement keys.

type loginArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authTicket struct {
	Token    string `json:"token"`
	Expires  int64  `json:"expires"`
	Duration int64  `json:"duration"`
}

type apiUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Country   string `json:"country"`
}

type loginData struct {
	User       apiUser    `json:"user"`
	AuthTicket authTicket `json:"authTicket"`
}

type errorMessage struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Status int           `json:"status"`
	Data   *loginData    `json:"data"`
	Error  *errorMessage `json:"error"`
}

type wireMeasurement struct {
	FactoryTimestamp string       `json:"FactoryTimestamp"`
	Timestamp        string       `json:"Timestamp"`
	Type             int          `json:"Type"`
	ValueInMgPerDl   float64      `json:"ValueInMgPerDl"`
	GlucoseUnits     int          `json:"GlucoseUnits"`
	Value            float64      `json:"Value"`
	TrendArrow       models.Trend `json:"TrendArrow"`
	IsHigh           bool         `json:"isHigh"`
	IsLow            bool         `json:"isLow"`
}

type wirePatient struct {
	ID                 string          `json:"id"`
	PatientID          string          `json:"patientId"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	TargetLow          int             `json:"targetLow"`
	TargetHigh         int             `json:"targetHigh"`
	GlucoseMeasurement wireMeasurement `json:"glucoseMeasurement"`
}

type patientsResponse struct {
	Status int           `json:"status"`
	Data   []wirePatient `json:"data"`
}

type graphData struct {
	Connection wirePatient       `json:"connection"`
	GraphData  []wireMeasurement `json:"graphData"`
}

type graphResponse struct {
	Status int       `json:"status"`
	Data   graphData `json:"data"`
}

type logbookResponse struct {
	Status int               `json:"status"`
	Data   []wireMeasurement `json:"data"`
}

// The vendor formats measurement timestamps like "1/2/2024 3:04:05 PM".
// FactoryTimestamp is UTC; Timestamp is in the sensor's local zone.
const vendorTimeLayout = "1/2/2006 3:04:05 PM"

func parseVendorTime(m wireMeasurement) time.Time {
	if ts, err := time.ParseInLocation(vendorTimeLayout, m.FactoryTimestamp, time.UTC); err == nil {
		return ts
	}
	if ts, err := time.ParseInLocation(vendorTimeLayout, m.Timestamp, time.Local); err == nil {
		return ts
	}
	return time.Time{}
}

func toReading(m wireMeasurement) models.Reading {
	return models.Reading{
		Timestamp: parseVendorTime(m),
		ValueMgDl: m.ValueInMgPerDl,
		ValueMmol: models.MmolFromMgDl(m.ValueInMgPerDl),
		Trend:     m.TrendArrow,
		High:      m.IsHigh,
		Low:       m.IsLow,
	}
}

func toPatientSummary(p wirePatient) models.PatientSummary {
	return models.PatientSummary{
		ID:         p.ID,
		PatientID:  p.PatientID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		TargetLow:  p.TargetLow,
		TargetHigh: p.TargetHigh,
		Latest:     toReading(p.GlucoseMeasurement),
	}
}
