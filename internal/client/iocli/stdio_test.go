package iocli

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStdio(input string) (*Stdio, *bytes.Buffer) {
	var out bytes.Buffer
	return &Stdio{
		in:  bufio.NewReader(strings.NewReader(input)),
		out: &out,
		fd:  -1,
	}, &out
}

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	assert.NotNil(t, NewStdio())
}

func TestPrintlnPrintfWrite(t *testing.T) {
	stdio, out := newTestStdio("")

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s\n", 1, "abc")
	_, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc\nraw", out.String())
}

// Последовательные чтения не теряют буферизованный ввод
func TestReadInput_Sequential(t *testing.T) {
	stdio, out := newTestStdio("first\n  second  \nlast")

	for _, want := range []string{"first", "second", "last"} {
		got, err := stdio.ReadInput("> ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := stdio.ReadInput("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > > ", out.String())
}

// Без терминала пароль читается как обычная строка
func TestReadPassword_NotTerminal(t *testing.T) {
	stdio, _ := newTestStdio("s3cret\n")

	got, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

// Тест ReadInput через настоящий os.Stdin
func TestReadInput_FromStdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("user input\n"))
		_ = w.Close()
	}()

	oldStdin, oldStdout := os.Stdin, os.Stdout
	defer func() { os.Stdin, os.Stdout = oldStdin, oldStdout }()
	os.Stdin = r
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer devNull.Close()
	os.Stdout = devNull

	result, err := NewStdio().ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", result)
}
