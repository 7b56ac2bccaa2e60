package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value form",
			args:    []string{"-a", "http://pool.local:8000", "-p", "25"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://pool.local:8000"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=pool.json", "-d", "/var/lib/cursorpool"},
			allowed: []string{"-config"},
			want:    []string{"-config=pool.json"},
		},
		{
			name:    "equals form of a disallowed flag dropped",
			args:    []string{"-d=/tmp", "-p", "10"},
			allowed: []string{"-p"},
			want:    []string{"-p", "10"},
		},
		{
			name:    "positional argument never taken as a flag",
			args:    []string{"list", "-p", "10"},
			allowed: []string{"-p"},
			want:    []string{"-p", "10"},
		},
		{
			name:    "non-flag token with equals stays out",
			args:    []string{"key=value", "-t", "90"},
			allowed: []string{"-t"},
			want:    []string{"-t", "90"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-t", "90", "-x", "1", "-a", "http://pool.local"},
			allowed: []string{"-a", "-t"},
			want:    []string{"-t", "90", "-a", "http://pool.local"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-d"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "following flag is not consumed as a value",
			args:    []string{"-d", "-p", "10"},
			allowed: []string{"-d", "-p"},
			want:    []string{"-d", "-p", "10"},
		},
		{
			name:    "repeated flag preserved",
			args:    []string{"-c", "a.json", "-c", "b.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "a.json", "-c", "b.json"},
		},
		{
			name:    "nothing allowed yields empty non-nil slice",
			args:    []string{"-a", "x", "-t", "1"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short form", []string{"bin", "-c", "pool.json"}, "pool.json"},
		{"long form", []string{"bin", "-config", "/etc/cursorpool.json"}, "/etc/cursorpool.json"},
		{"equals form", []string{"bin", "-config=alt.json"}, "alt.json"},
		{"absent", []string{"bin", "-a", "http://pool.local", "-p", "10"}, ""},
		{"last one wins", []string{"bin", "-c", "one.json", "-config", "two.json"}, "two.json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			os.Args = tc.args
			require.Equal(t, tc.want, JsonConfigFlags())
		})
	}
}
