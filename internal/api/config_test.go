package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTenantConfig_Defaults(t *testing.T) {
	cfg := NewTenantConfig(nil)

	assert.Equal(t, TenantConfig{DomainName: DefaultDomain}, cfg)
	assert.Equal(t, DefaultDomain+"///", cfg.BaseURL())
}

func TestNewTenantConfig_RecognizedKeys(t *testing.T) {
	cfg := NewTenantConfig(map[string]string{
		"domain_name":   "https://a1-sgp.easemob.com",
		"org_name":      "o1",
		"app_name":      "a1",
		"client_id":     "cid",
		"client_secret": "csec",
		"access_token":  "tok",
		"url":           "ignored",
	})

	assert.Equal(t, TenantConfig{
		DomainName:   "https://a1-sgp.easemob.com",
		OrgName:      "o1",
		AppName:      "a1",
		ClientID:     "cid",
		ClientSecret: "csec",
		AccessToken:  "tok",
	}, cfg)
}

func TestBaseURL_CollapsesEmptySegments(t *testing.T) {
	tests := []struct {
		name string
		cfg  TenantConfig
		want string
	}{
		{"all set", TenantConfig{DomainName: "https://h", OrgName: "o", AppName: "a"}, "https://h/o/a/"},
		{"empty org", TenantConfig{DomainName: "https://h", AppName: "a"}, "https://h//a/"},
		{"empty app", TenantConfig{DomainName: "https://h", OrgName: "o"}, "https://h/o//"},
		{"all empty", TenantConfig{}, "///"},
		{"domain with trailing slash", TenantConfig{DomainName: "https://h/", OrgName: "o", AppName: "a"}, "https://h//o/a/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BaseURL())
		})
	}
}

func TestTenantConfigSet(t *testing.T) {
	for _, name := range Fields() {
		t.Run(name, func(t *testing.T) {
			cfg := TenantConfig{}
			assert.True(t, cfg.Set(name, "v"))

			got, ok := cfg.Get(name)
			assert.True(t, ok)
			assert.Equal(t, "v", got)

			// exactly one field changed
			changed := 0
			for _, other := range Fields() {
				if v, _ := cfg.Get(other); v != "" {
					changed++
				}
			}
			assert.Equal(t, 1, changed)
		})
	}
}

func TestTenantConfigSet_Unknown(t *testing.T) {
	cfg := TenantConfig{DomainName: "d", OrgName: "o"}
	before := cfg

	for _, name := range []string{"url", "Domain_Name", "", "target_array", "token"} {
		assert.False(t, cfg.Set(name, "x"), name)
		_, ok := cfg.Get(name)
		assert.False(t, ok, name)
	}
	assert.Equal(t, before, cfg)
}

func TestParseField(t *testing.T) {
	f, ok := ParseField(" app_name ")
	assert.True(t, ok)
	assert.Equal(t, FieldAppName, f)
	assert.Equal(t, "app_name", f.String())

	_, ok = ParseField("nope")
	assert.False(t, ok)
	assert.Equal(t, "", Field(99).String())
}

func TestFieldsIsACopy(t *testing.T) {
	f := Fields()
	f[0] = "mutated"
	assert.Equal(t, "domain_name", Fields()[0])
}
