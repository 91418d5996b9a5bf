package exchange

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCharset(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "", expected: "UTF-8"},
		{name: "UTF-8", expected: "UTF-8"},
		{name: "utf-8", expected: "UTF-8"},
		{name: "utf8", expected: "UTF-8"},
		{name: "ISO-8859-1", expected: "ISO-8859-1"},
		{name: "Shift_JIS", expected: "Shift_JIS"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			charset, err := LookupCharset(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, charset.Name)
		})
	}
}

func TestLookupCharset_Unknown(t *testing.T) {
	for _, name := range []string{"bogus-encoding", "ISO-2022-KR", "csISO2022KR", "replacement"} {
		t.Run(name, func(t *testing.T) {
			_, err := LookupCharset(name)
			require.Error(t, err)
			encErr, ok := errors.Cause(err).(*EncodingError)
			require.True(t, ok, "unexpected error type %T", errors.Cause(err))
			assert.Equal(t, name, encErr.Encoding)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestEncodeForm(t *testing.T) {
	testCases := []struct {
		title    string
		params   []Param
		encoding string
		expected string
	}{
		{title: "Empty", params: nil, expected: ""},
		{title: "Empty value", params: []Param{{Name: "a", Value: ""}}, expected: "a="},
		{title: "Reserved characters", params: []Param{{Name: "a&b", Value: "c=d/e?"}}, expected: "a%26b=c%3Dd%2Fe%3F"},
		{title: "Plus sign", params: []Param{{Name: "sum", Value: "1+1"}}, expected: "sum=1%2B1"},
		{title: "Unreserved characters", params: []Param{{Name: "k", Value: "a-b_c.d~e"}}, expected: "k=a-b_c.d~e"},
		{title: "Shift_JIS", params: []Param{{Name: "q", Value: "日本"}}, encoding: "Shift_JIS", expected: "q=%93%FA%96%7B"},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			actual, err := EncodeForm(tt.params, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestEncodeForm_UnknownEncoding(t *testing.T) {
	_, err := EncodeForm([]Param{{Name: "a", Value: "b"}}, "no-such-charset")
	_, ok := errors.Cause(err).(*EncodingError)
	assert.True(t, ok, "unexpected error %v", err)
}

func TestDecodeForm(t *testing.T) {
	actual, err := DecodeForm("a=1&&b&c=x+y%21&a=2", "")
	require.NoError(t, err)
	assert.Equal(t, []Param{
		{Name: "a", Value: "1"},
		{Name: "b", Value: ""},
		{Name: "c", Value: "x y!"},
		{Name: "a", Value: "2"},
	}, actual)
}

func TestDecodeForm_Malformed(t *testing.T) {
	_, err := DecodeForm("a=%zz", "")
	assert.Error(t, err)
}

func TestFormRoundTrip(t *testing.T) {
	testCases := []struct {
		encoding string
		params   []Param
	}{
		{encoding: "UTF-8", params: []Param{{Name: "q", Value: "1 2"}}},
		{encoding: "UTF-8", params: []Param{{Name: "名前", Value: "値 & more"}, {Name: "名前", Value: "🍺"}}},
		{encoding: "ISO-8859-1", params: []Param{{Name: "größe", Value: "déjà vu"}, {Name: "x", Value: ""}}},
		{encoding: "Shift_JIS", params: []Param{{Name: "q", Value: "日本 語"}}},
	}
	for _, tt := range testCases {
		t.Run(tt.encoding, func(t *testing.T) {
			encoded, err := EncodeForm(tt.params, tt.encoding)
			require.NoError(t, err)
			decoded, err := DecodeForm(encoded, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.params, decoded)
		})
	}
}
