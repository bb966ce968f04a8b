package selector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripted(t *testing.T) {
	s := NewScripted("2", "lib/lib.csproj")

	idx, err := s.ChooseIndex([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	path, err := s.RequestPath()
	require.NoError(t, err)
	assert.Equal(t, "lib/lib.csproj", path)
	assert.Equal(t, 0, s.Remaining())

	_, err = s.RequestPath()
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestScripted_notANumber(t *testing.T) {
	_, err := NewScripted("x").ChooseIndex([]string{"a"})
	assert.Error(t, err)
}

func TestParseScript(t *testing.T) {
	assert.Nil(t, ParseScript(""))
	assert.Nil(t, ParseScript("  "))
	assert.Equal(t, []string{"3", "1", "path/depot.yaml"}, ParseScript("3, 1 ,path/depot.yaml"))
}

func TestPrompt_ChooseIndex(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("abc\n2\n"), &out)

	idx, err := p.ChooseIndex([]string{"core", "extras"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "1) core")
	assert.Contains(t, out.String(), "2) extras")
	assert.Contains(t, out.String(), `"abc" is not a number`)
}

func TestPrompt_outOfRangePassedThrough(t *testing.T) {
	p := NewPrompt(strings.NewReader("7\n"), &bytes.Buffer{})
	idx, err := p.ChooseIndex([]string{"core"})
	require.NoError(t, err)
	assert.Equal(t, 6, idx)
}

func TestPrompt_RequestPath(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("  sub/app.csproj"), &out)
	path, err := p.RequestPath()
	require.NoError(t, err)
	assert.Equal(t, "sub/app.csproj", path)
	assert.Contains(t, out.String(), "enter the project path")
}

func TestPrompt_eof(t *testing.T) {
	p := NewPrompt(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.ChooseIndex([]string{"a", "b"})
	assert.ErrorIs(t, err, ErrNoAnswer)
}
