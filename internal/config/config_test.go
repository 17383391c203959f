package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	for _, c := range []struct {
		in  string
		out time.Duration
	}{
		{"", 0},
		{"30s", 30 * time.Second},
		{"1m30s", 90 * time.Second},
		{"15", 15 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"1e1", 10 * time.Second},
	} {
		var d duration
		require.NoError(t, d.parse(c.in), c.in)
		require.Equal(t, c.out, time.Duration(d), c.in)
	}
	var d duration
	require.Error(t, d.parse("soon"))

	require.NoError(t, json.Unmarshal([]byte(`"2s"`), &d))
	require.Equal(t, 2*time.Second, time.Duration(d))
	require.NoError(t, json.Unmarshal([]byte(`3`), &d))
	require.Equal(t, 3*time.Second, time.Duration(d))
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set(KeyOntologyPath, "ontology.nq")
	v.Set(KeyHTTPBase, "http://example.org/app/")
	v.Set(KeyHTTPHost, "127.0.0.1:64210")
	v.Set(KeyHTTPTimeout, "30")
	v.Set(KeyHTTPReadOnly, true)

	c, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, "ontology.nq", c.OntologyPath)
	require.Equal(t, "http://example.org/app/", c.BaseURI.String())
	require.Equal(t, 30*time.Second, c.Timeout)
	require.True(t, c.ReadOnly)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"ontology_path": "ontology.nq",
		"base": "http://example.org/app/",
		"host": "127.0.0.1:64210",
		"timeout": "30s",
		"read_only": true
	}`, string(data))

	v.Set(KeyHTTPBase, "relative/")
	_, err = FromViper(v)
	require.Error(t, err)

	v.Set(KeyHTTPBase, "")
	v.Set(KeyHTTPTimeout, "later")
	_, err = FromViper(v)
	require.Error(t, err)
}
