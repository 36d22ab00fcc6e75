package api

import "strings"

// DefaultDomain is the public Easemob REST endpoint.
const DefaultDomain = "https://a1.easemob.com"

// Field names one of the recognized tenant configuration entries.
type Field int

const (
	FieldDomainName Field = iota
	FieldOrgName
	FieldAppName
	FieldClientID
	FieldClientSecret
	FieldAccessToken
)

var fieldNames = [...]string{
	FieldDomainName:   "domain_name",
	FieldOrgName:      "org_name",
	FieldAppName:      "app_name",
	FieldClientID:     "client_id",
	FieldClientSecret: "client_secret",
	FieldAccessToken:  "access_token",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return ""
	}
	return fieldNames[f]
}

// Fields returns the recognized configuration field names in declaration order.
func Fields() []string {
	out := make([]string, len(fieldNames))
	copy(out, fieldNames[:])
	return out
}

// ParseField maps a configuration key to its Field.
func ParseField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// TenantConfig identifies one organization/application pair and the
// credentials used to act on it.
type TenantConfig struct {
	DomainName   string `json:"domain_name" yaml:"domain_name"`
	OrgName      string `json:"org_name" yaml:"org_name"`
	AppName      string `json:"app_name" yaml:"app_name"`
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret"`
	AccessToken  string `json:"access_token,omitempty" yaml:"access_token"`
}

// NewTenantConfig builds a config from a key/value mapping. Absent keys take
// their defaults: DefaultDomain for domain_name, empty for everything else.
// Keys that are not recognized are ignored.
func NewTenantConfig(values map[string]string) TenantConfig {
	cfg := TenantConfig{DomainName: DefaultDomain}
	for k, v := range values {
		cfg.Set(k, v)
	}
	return cfg
}

// Set overwrites the named field. It reports false, leaving the config
// untouched, when name is not a recognized field.
func (c *TenantConfig) Set(name, value string) bool {
	f, ok := ParseField(name)
	if !ok {
		return false
	}
	*c.ref(f) = value
	return true
}

// Get returns the value of the named field.
func (c *TenantConfig) Get(name string) (string, bool) {
	f, ok := ParseField(name)
	if !ok {
		return "", false
	}
	return *c.ref(f), true
}

func (c *TenantConfig) ref(f Field) *string {
	switch f {
	case FieldDomainName:
		return &c.DomainName
	case FieldOrgName:
		return &c.OrgName
	case FieldAppName:
		return &c.AppName
	case FieldClientID:
		return &c.ClientID
	case FieldClientSecret:
		return &c.ClientSecret
	default:
		return &c.AccessToken
	}
}

// BaseURL returns domain/org/app/ with a trailing separator. Empty fields
// collapse to adjacent separators; nothing is trimmed.
func (c TenantConfig) BaseURL() string {
	return c.DomainName + "/" + c.OrgName + "/" + c.AppName + "/"
}

// affectsToken reports whether changing f invalidates a fetched token.
func (f Field) affectsToken() bool {
	switch f {
	case FieldDomainName, FieldOrgName, FieldAppName, FieldClientID, FieldClientSecret:
		return true
	}
	return false
}
