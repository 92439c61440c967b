package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	t.Run("trims the trailing newline", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("hello world\n"))
		var out bytes.Buffer

		got, err := GetSimpleText(reader, "Say something", &out)
		require.NoError(t, err)
		assert.Equal(t, "hello world", got)
		assert.Contains(t, out.String(), "Say something")
	})

	t.Run("returns partial line on EOF", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader("partial"))
		var out bytes.Buffer

		got, err := GetSimpleText(reader, "Say something", &out)
		require.NoError(t, err)
		assert.Equal(t, "partial", got)
	})

	t.Run("propagates EOF with no input", func(t *testing.T) {
		reader := bufio.NewReader(strings.NewReader(""))
		var out bytes.Buffer

		_, err := GetSimpleText(reader, "Say something", &out)
		require.Error(t, err)
	})
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) {
		return []byte("pass1234"), nil
	}

	var out bytes.Buffer
	got, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "pass1234", got)
	assert.Contains(t, out.String(), "Enter password")
}
