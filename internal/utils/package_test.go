package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageSegments(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		wantErr  bool
	}{
		{"myapp", []string{"myapp"}, false},
		{"com.example", []string{"com", "example"}, false},
		{"com.example.app", []string{"com", "example", "app"}, false},
		{"", nil, true},
		{"   ", nil, true},
		{"com..example", nil, true},
		{".com", nil, true},
		{"com.", nil, true},
		{"com/example", nil, true},
		{`com\example`, nil, true},
		{"my app", nil, true},
		{"com.1example", nil, true},
		{"com.my-app", nil, true},
		{"_internal.$gen", []string{"_internal", "$gen"}, false},
		{"app2.v1", []string{"app2", "v1"}, false},
	}

	for _, test := range tests {
		result, err := PackageSegments(test.input)
		if test.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPackage, "PackageSegments(%q)", test.input)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, test.expected, result, "PackageSegments(%q)", test.input)
	}
}

func TestPackagePath(t *testing.T) {
	path, err := PackagePath("com.example.app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("com", "example", "app"), path)

	_, err = PackagePath("")
	assert.Error(t, err)
}

func TestIsJavaIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Main", true},
		{"_x", true},
		{"$x1", true},
		{"caf\u00e9", true},
		{"", false},
		{"1abc", false},
		{"a-b", false},
		{"a b", false},
		{"a/b", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsJavaIdentifier(tt.input), "IsJavaIdentifier(%q)", tt.input)
	}
}
