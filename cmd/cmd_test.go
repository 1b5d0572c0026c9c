package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
		slugMax = 50
	})
	err := RootCmd.Execute()
	return out.String(), err
}

func TestSlugCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Default", []string{"slug", "Data Center #1"}, "data-center-1\n"},
		{"MaxLength", []string{"slug", "--max", "4", "Data Center"}, "data\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := run(t, "slug", "")
	assert.Error(t, err)
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "TYPE"))
	assert.True(t, strings.HasPrefix(lines[1], "tag "))
	assert.Contains(t, out, "dcim/devices")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		auto  bool
		want  bool
	}{
		{"Auto", "", true, true},
		{"Yes", "yes\n", false, true},
		{"YesWithoutNewline", "yes", false, true},
		{"No", "no\n", false, false},
		{"Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, tt.auto))
		})
	}
}
