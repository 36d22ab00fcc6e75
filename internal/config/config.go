// Package config persists tenant profiles and resolves the tenant settings
// used to build an API client.
//
// Each profile is one api.TenantConfig stored as JSON in the OS keyring
// under "tenant:<name>". An index of names and the current profile name are
// stored alongside it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/99designs/keyring"

	"github.com/easemob/easemob-cli/internal/api"
)

const (
	serviceName    = "easemob-cli"
	defaultProfile = "default"

	tenantKeyPrefix = "tenant:"
	indexKey        = "tenants"
	currentKey      = "current_tenant"

	envKeyringBackend  = "EASEMOB_KEYRING_BACKEND"
	envKeyringPassword = "EASEMOB_KEYRING_PASSWORD"
	envCredentialsDir  = "EASEMOB_CREDENTIALS_DIR"
)

// ErrNotConfigured is returned when the requested profile does not exist.
var ErrNotConfigured = errors.New("tenant not configured - run 'em auth login' first")

var openKeyring = keyring.Open

var userConfigDir = os.UserConfigDir

var stdinHasTTY = func() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// SetOpenKeyring replaces the keyring opener and returns a restore func.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

// backend selects where client secrets live.
type backend int

const (
	backendAuto backend = iota
	backendFile
	backendSystem
)

func backendFromEnv() backend {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envKeyringBackend))) {
	case "file":
		return backendFile
	case "system", "os", "native":
		return backendSystem
	default:
		return backendAuto
	}
}

// fileOnly reports whether the encrypted file backend must be used. Linux
// without a session bus has no secret service to fall back on.
func fileOnly(goos string, b backend, dbusAddr string) bool {
	switch b {
	case backendFile:
		return true
	case backendAuto:
		return goos == "linux" && strings.TrimSpace(dbusAddr) == ""
	default:
		return false
	}
}

func keyringConfig() keyring.Config {
	cfg := keyring.Config{ServiceName: serviceName}
	b := backendFromEnv()
	if b == backendSystem {
		return cfg
	}
	cfg.FileDir = credentialsDir()
	cfg.FilePasswordFunc = filePassword
	if fileOnly(runtime.GOOS, b, os.Getenv("DBUS_SESSION_BUS_ADDRESS")) {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return cfg
}

// credentialsDir is where the file backend keeps encrypted tenants.
func credentialsDir() string {
	base := strings.TrimSpace(os.Getenv(envCredentialsDir))
	if base == "" {
		if dir, err := userConfigDir(); err == nil && dir != "" {
			base = filepath.Join(dir, serviceName)
		} else {
			base = filepath.Join(os.TempDir(), serviceName)
		}
	}
	return filepath.Join(base, "keyring")
}

func filePassword(prompt string) (string, error) {
	if password := os.Getenv(envKeyringPassword); strings.TrimSpace(password) != "" {
		return password, nil
	}
	if !stdinHasTTY() {
		return "", fmt.Errorf("set %s to unlock stored tenants without a terminal", envKeyringPassword)
	}
	return keyring.TerminalPrompt(prompt)
}

func profileName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return defaultProfile
	}
	return name
}

func tenantKey(name string) string {
	return tenantKeyPrefix + profileName(name)
}

// tenantStore wraps one opened keyring for the duration of an operation.
type tenantStore struct {
	ring keyring.Keyring
}

func openStore() (*tenantStore, error) {
	ring, err := openKeyring(keyringConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &tenantStore{ring: ring}, nil
}

func (s *tenantStore) names() ([]string, error) {
	item, err := s.ring.Get(indexKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile list: %w", err)
	}
	var names []string
	if err := json.Unmarshal(item.Data, &names); err != nil {
		return nil, fmt.Errorf("corrupt profile list: %w", err)
	}
	return names, nil
}

func (s *tenantStore) setNames(names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.ring.Set(keyring.Item{Key: indexKey, Data: data})
}

func (s *tenantStore) get(name string) (api.TenantConfig, error) {
	var tenant api.TenantConfig
	item, err := s.ring.Get(tenantKey(name))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return tenant, ErrNotConfigured
	}
	if err != nil {
		return tenant, fmt.Errorf("failed to read profile %q: %w", profileName(name), err)
	}
	if err := json.Unmarshal(item.Data, &tenant); err != nil {
		return tenant, fmt.Errorf("corrupt profile %q: %w", profileName(name), err)
	}
	return tenant, nil
}

func (s *tenantStore) put(name string, tenant api.TenantConfig) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	if err := s.ring.Set(keyring.Item{Key: tenantKey(name), Label: serviceName + " " + profileName(name), Data: data}); err != nil {
		return fmt.Errorf("failed to save profile %q: %w", profileName(name), err)
	}
	names, err := s.names()
	if err != nil {
		return err
	}
	if slices.Contains(names, profileName(name)) {
		return nil
	}
	return s.setNames(append(names, profileName(name)))
}

// remove deletes a tenant and returns the remaining names.
func (s *tenantStore) remove(name string) ([]string, error) {
	if err := s.ring.Remove(tenantKey(name)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to remove profile %q: %w", profileName(name), err)
	}
	names, err := s.names()
	if err != nil {
		return nil, err
	}
	names = slices.DeleteFunc(names, func(n string) bool { return n == profileName(name) })
	return names, s.setNames(names)
}

func (s *tenantStore) current() (string, error) {
	item, err := s.ring.Get(currentKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return defaultProfile, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read current profile: %w", err)
	}
	return profileName(string(item.Data)), nil
}

func (s *tenantStore) setCurrent(name string) error {
	return s.ring.Set(keyring.Item{Key: currentKey, Data: []byte(profileName(name))})
}

// SaveProfile stores a tenant under a named profile and makes it current.
func SaveProfile(profile string, tenant api.TenantConfig) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	if err := s.put(profile, tenant); err != nil {
		return err
	}
	return s.setCurrent(profile)
}

// LoadProfile retrieves the tenant stored under a named profile.
func LoadProfile(profile string) (api.TenantConfig, error) {
	s, err := openStore()
	if err != nil {
		return api.TenantConfig{}, err
	}
	return s.get(profile)
}

// DeleteProfile removes a stored profile. If it was current, the first
// remaining profile becomes current.
func DeleteProfile(profile string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	remaining, err := s.remove(profile)
	if err != nil {
		return err
	}
	if current, err := s.current(); err != nil || current != profileName(profile) {
		return err
	}
	next := defaultProfile
	if len(remaining) > 0 {
		next = remaining[0]
	}
	return s.setCurrent(next)
}

// ListProfiles returns the stored profile names in creation order.
func ListProfiles() ([]string, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	return s.names()
}

// CurrentProfile returns the active profile name.
func CurrentProfile() (string, error) {
	s, err := openStore()
	if err != nil {
		return "", err
	}
	return s.current()
}

// SetCurrentProfile sets the active profile name.
func SetCurrentProfile(profile string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	return s.setCurrent(profile)
}
