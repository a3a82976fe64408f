package arpabet

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *Dictionary {
	t.Helper()
	d, err := LoadFile("testdata/sample.dict")
	require.NoError(t, err)
	return d
}

func TestLoadSample(t *testing.T) {
	d := loadSample(t)
	assert.Equal(t, 11, d.Len())

	p, ok := d.LookUp("hello")
	require.True(t, ok)
	assert.Equal(t, []string{"HH", "AH0", "L", "OW1"}, p.Symbols())
	assert.Equal(t, "hʌloʊ", p.String())
}

func TestLookUpIsCaseInsensitive(t *testing.T) {
	d := loadSample(t)

	upper, ok := d.LookUp("HELLO")
	require.True(t, ok)
	lower, ok := d.LookUp("hello")
	require.True(t, ok)
	mixed, ok := d.LookUp("HeLLo")
	require.True(t, ok)

	assert.Equal(t, slices.Collect(upper.Runes()), slices.Collect(lower.Runes()))
	assert.Equal(t, upper.Symbols(), mixed.Symbols())
}

func TestLookUpMissing(t *testing.T) {
	d := loadSample(t)
	_, ok := d.LookUp("zzzqx")
	assert.False(t, ok)
}

func TestRunesAreReplayable(t *testing.T) {
	d := loadSample(t)
	p, ok := d.LookUp("judge")
	require.True(t, ok)

	first := slices.Collect(p.Runes())
	second := slices.Collect(p.Runes())
	assert.Equal(t, first, second)
	assert.Equal(t, "dʒʌdʒ", string(first))
}

func TestRunesStopEarly(t *testing.T) {
	d := loadSample(t)
	p, _ := d.LookUp("example")

	var got []rune
	for r := range p.Runes() {
		got = append(got, r)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []rune("ɪɡ"), got)
}

func TestVariants(t *testing.T) {
	d := loadSample(t)

	variants := d.Variants("Hello")
	require.Len(t, variants, 2)
	assert.Equal(t, "hʌloʊ", variants[0].String())
	assert.Equal(t, "hɛloʊ", variants[1].String())

	assert.Len(t, d.Variants("cat"), 1)
	assert.Empty(t, d.Variants("zzzqx"))
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	d, err := Parse(";;; comment\n\nDOG  D AO1 G\r\n")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	p, ok := d.LookUp("dog")
	require.True(t, ok)
	assert.Equal(t, "dɔɡ", p.String())
}

func TestParseLastDuplicateWins(t *testing.T) {
	d, err := Parse("READ  R IY1 D\nREAD  R EH1 D\n")
	require.NoError(t, err)

	p, ok := d.LookUp("read")
	require.True(t, ok)
	assert.Equal(t, "ɹɛd", p.String())
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		corpus string
		line   int
		want   error
	}{
		{"single space separator", "CAT  K AE1 T\nDOG D AO1 G\n", 2, ErrMalformedEntry},
		{"no symbols", "CAT  \n", 1, ErrMalformedEntry},
		{"no word", "  K AE1 T\n", 1, ErrMalformedEntry},
		{"unknown symbol", ";;; header\nCAT  K QX1 T\n", 2, ErrUnknownSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.corpus)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.want)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.dict")
	assert.Error(t, err)
}

func TestBundledCorpus(t *testing.T) {
	d, err := Bundled()
	require.NoError(t, err)
	assert.Greater(t, d.Len(), 100)

	p, ok := d.LookUp("Hello")
	require.True(t, ok)
	assert.Equal(t, []string{"HH", "AH0", "L", "OW1"}, p.Symbols())
	assert.Len(t, d.Variants("the"), 3)
}
