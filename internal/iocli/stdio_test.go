package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestStdio_Output(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader(""), &out)

	s.Println("hello", "world")
	s.Printf("test %d %s\n", 1, "abc")
	n, err := s.Write([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, "hello world\ntest 1 abc\nraw", out.String())
}

func TestStdio_ReadInput(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader("  user input \nsecond\nlast"), &out)

	first, err := s.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", first)

	// буфер общий для всех вызовов
	second, err := s.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	last, err := s.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "last", last)

	_, err = s.ReadInput("")
	assert.ErrorIs(t, err, io.EOF)

	assert.True(t, strings.HasPrefix(out.String(), "Prompt: "))
}

func TestStdio_ReadPasswordFromPipe(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "secret\n", want: "secret"},
		{name: "keeps spaces", input: " secret \n", want: " secret "},
		{name: "crlf", input: "secret\r\n", want: "secret"},
		{name: "no newline", input: "secret", want: "secret"},
		{name: "empty line", input: "\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(strings.NewReader(tt.input), io.Discard)
			got, err := s.ReadPassword("Password: ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
