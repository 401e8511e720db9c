package testutil

import (
	"context"
	"sync"
	"time"

	"cgmd/internal/libreview"
	"cgmd/internal/models"
	"cgmd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	TickOutcomes  map[string]int
	LoginResults  map[string]int
	VendorCalls   map[string]int
	LastReading   float64
	StreamsActive int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		TickOutcomes: make(map[string]int),
		LoginResults: make(map[string]int),
		VendorCalls:  make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncTicksTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TickOutcomes[outcome]++
}
func (m *MockMetrics) IncLoginsTotal(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginResults[result]++
}
func (m *MockMetrics) ObserveVendorRequestDuration(endpoint string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VendorCalls[endpoint]++
}
func (m *MockMetrics) SetLastReading(valueMgDl float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastReading = valueMgDl
}
func (m *MockMetrics) SetStreamsActive(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreamsActive = count
}

func (m *MockMetrics) TickOutcome(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TickOutcomes[outcome]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockClient implements libreview.ClientInterface with injectable behavior
// and call counters.
type MockClient struct {
	mu sync.Mutex

	LoginFn    func(creds models.Credentials) (*libreview.LoginResult, error)
	PatientsFn func(session models.Session) ([]models.PatientSummary, error)
	GraphFn    func(session models.Session, patientID string) (*libreview.GraphResult, error)
	LogbookFn  func(session models.Session, patientID string) ([]models.Reading, error)

	LoginCalls    int
	PatientsCalls int
}

func (m *MockClient) Login(_ context.Context, creds models.Credentials) (*libreview.LoginResult, error) {
	m.mu.Lock()
	m.LoginCalls++
	m.mu.Unlock()
	if m.LoginFn != nil {
		return m.LoginFn(creds)
	}
	return &libreview.LoginResult{Token: "token", ExpiresAt: time.Now().Add(time.Hour).Unix(), AccountID: "account"}, nil
}

func (m *MockClient) ListPatients(_ context.Context, session models.Session) ([]models.PatientSummary, error) {
	m.mu.Lock()
	m.PatientsCalls++
	m.mu.Unlock()
	if m.PatientsFn != nil {
		return m.PatientsFn(session)
	}
	return nil, nil
}

func (m *MockClient) GetGraph(_ context.Context, session models.Session, patientID string) (*libreview.GraphResult, error) {
	if m.GraphFn != nil {
		return m.GraphFn(session, patientID)
	}
	return &libreview.GraphResult{}, nil
}

func (m *MockClient) GetLogbook(_ context.Context, session models.Session, patientID string) ([]models.Reading, error) {
	if m.LogbookFn != nil {
		return m.LogbookFn(session, patientID)
	}
	return nil, nil
}

func (m *MockClient) Calls() (logins, patients int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoginCalls, m.PatientsCalls
}

// MockPreferences implements providers.PreferencesProviderInterface with an
// in-memory snapshot and recorded session updates.
type MockPreferences struct {
	mu             sync.Mutex
	Prefs          models.Preferences
	SessionUpdates []models.Session
}

func (m *MockPreferences) Snapshot() models.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Prefs
}

func (m *MockPreferences) UpdateCredentials(email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prefs.Email = email
	m.Prefs.Password = password
	return nil
}

func (m *MockPreferences) UpdateSession(token string, expiresAt int64, accountIDHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prefs.AuthToken = token
	m.Prefs.TokenExpiration = expiresAt
	m.Prefs.AccountIDHash = accountIDHash
	m.SessionUpdates = append(m.SessionUpdates, models.Session{Token: token, ExpiresAt: expiresAt, AccountIDHash: accountIDHash})
	return nil
}

func (m *MockPreferences) UpdatePatientID(patientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prefs.PatientID = patientID
	return nil
}

func (m *MockPreferences) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prefs = models.Preferences{}
	return nil
}

func (m *MockPreferences) RecordedSessionUpdates() []models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Session, len(m.SessionUpdates))
	copy(out, m.SessionUpdates)
	return out
}
