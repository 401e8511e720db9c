package providers

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/atomic"

	"cgmd/internal/models"
	"cgmd/internal/structures"
)

const (
	prefKeyEmail           = "email"
	prefKeyPassword        = "password"
	prefKeyAuthToken       = "authToken"
	prefKeyTokenExpiration = "tokenExpiration"
	prefKeyPatientID       = "patientId"
	prefKeyAccountIDHash   = "accountIdHash"
)

// PreferencesProviderInterface is the reactive configuration source feeding
// the polling engine. Snapshot returns an immutable copy of the latest
// values; all writes are serialized behind the provider so the engine only
// ever reads, never mutates.
type PreferencesProviderInterface interface {
	Snapshot() models.Preferences
	UpdateCredentials(email, password string) error
	UpdateSession(token string, expiresAt int64, accountIDHash string) error
	UpdatePatientID(patientID string) error
	Clear() error
}

type PreferencesProvider struct {
	v      *viper.Viper
	logger Logger
	mu     sync.Mutex
	snap   atomic.Pointer[models.Preferences]
}

func NewPreferencesProvider(conf *structures.Config, logger Logger) (PreferencesProviderInterface, error) {
	v := viper.New()
	v.SetConfigFile(conf.Preferences.FilePath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := v.WriteConfigAs(conf.Preferences.FilePath); err != nil {
			return nil, err
		}
	}

	p := &PreferencesProvider{v: v, logger: logger}
	p.snap.Store(p.read())

	// Edits made outside the daemon (settings tooling writing the file
	// directly) land on the next poll tick without a restart.
	v.OnConfigChange(func(_ fsnotify.Event) {
		p.mu.Lock()
		p.snap.Store(p.read())
		p.mu.Unlock()
		logger.Infof(TypeApp, "preferences file changed, snapshot reloaded")
	})
	v.WatchConfig()

	return p, nil
}

func (p *PreferencesProvider) read() *models.Preferences {
	return &models.Preferences{
		Email:           p.v.GetString(prefKeyEmail),
		Password:        p.v.GetString(prefKeyPassword),
		AuthToken:       p.v.GetString(prefKeyAuthToken),
		TokenExpiration: p.v.GetInt64(prefKeyTokenExpiration),
		PatientID:       p.v.GetString(prefKeyPatientID),
		AccountIDHash:   p.v.GetString(prefKeyAccountIDHash),
	}
}

func (p *PreferencesProvider) Snapshot() models.Preferences {
	return *p.snap.Load()
}

func (p *PreferencesProvider) set(values map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, val := range values {
		p.v.Set(key, val)
	}
	if err := p.v.WriteConfig(); err != nil {
		return err
	}
	p.snap.Store(p.read())
	return nil
}

func (p *PreferencesProvider) UpdateCredentials(email, password string) error {
	return p.set(map[string]interface{}{
		prefKeyEmail:    email,
		prefKeyPassword: password,
	})
}

func (p *PreferencesProvider) UpdateSession(token string, expiresAt int64, accountIDHash string) error {
	return p.set(map[string]interface{}{
		prefKeyAuthToken:       token,
		prefKeyTokenExpiration: expiresAt,
		prefKeyAccountIDHash:   accountIDHash,
	})
}

func (p *PreferencesProvider) UpdatePatientID(patientID string) error {
	return p.set(map[string]interface{}{prefKeyPatientID: patientID})
}

func (p *PreferencesProvider) Clear() error {
	return p.set(map[string]interface{}{
		prefKeyEmail:           "",
		prefKeyPassword:        "",
		prefKeyAuthToken:       "",
		prefKeyTokenExpiration: int64(0),
		prefKeyPatientID:       "",
		prefKeyAccountIDHash:   "",
	})
}
