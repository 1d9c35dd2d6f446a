package xmlrpc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
)

func decodeString(t *testing.T, doc string, in *time.Location) *Response {
	t.Helper()
	resp, err := DecodeResponse(strings.NewReader(doc), in)
	require.NoError(t, err)
	return resp
}

func responseDoc(values ...string) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<methodResponse>\n  <params>\n")
	for _, v := range values {
		b.WriteString("    <param>\n      <value>\n        ")
		b.WriteString(v)
		b.WriteString("\n      </value>\n    </param>\n")
	}
	b.WriteString("  </params>\n</methodResponse>\n")
	return b.String()
}

const faultResponse = `<?xml version="1.0"?>
<methodResponse>
    <fault>
        <value>
            <struct>
                <member>
                    <name>faultCode</name>
                    <value>
                        <int>4</int>
                    </value>
                </member>
                <member>
                    <name>faultString</name>
                    <value>
                        <string>Too many parameters.</string>
                    </value>
                </member>
            </struct>
        </value>
    </fault>
</methodResponse>
`

func TestDecodeResponse_Fault(t *testing.T) {
	_, err := DecodeResponse(strings.NewReader(faultResponse), nil)
	var fault *Fault
	require.True(t, errors.As(err, &fault), "fault expected: %v", err)
	assert.Equal(t, 4, fault.Code)
	assert.Equal(t, "Too many parameters.", fault.Message)
	assert.Equal(t, "XML-RPC fault (code: 4, message: Too many parameters.)", err.Error())
}

func TestDecodeResponse_FaultPrecedence(t *testing.T) {
	doc := `<methodResponse><params><param><value><int>1</int></value></param></params>` +
		`<fault><value><struct><member><name>faultCode</name><value><i4>-1</i4></value></member>` +
		`<member><name>faultString</name><value><string>failed</string></value></member></struct></value></fault>` +
		`</methodResponse>`
	_, err := DecodeResponse(strings.NewReader(doc), nil)
	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, -1, fault.Code)
	assert.Equal(t, "failed", fault.Message)
}

func TestDecodeResponse_UndefinedFault(t *testing.T) {
	cases := []string{
		`<methodResponse><fault><value><string>error</string></value></fault></methodResponse>`,
		`<methodResponse><fault><value><struct>` +
			`<member><name>faultCode</name><value><int>4</int></value></member>` +
			`</struct></value></fault></methodResponse>`,
		`<methodResponse><fault><value><struct>` +
			`<member><name>faultCode</name><value><string>4</string></value></member>` +
			`<member><name>faultString</name><value><string>error</string></value></member>` +
			`</struct></value></fault></methodResponse>`,
		`<methodResponse><fault></fault></methodResponse>`,
		`<methodResponse><fault><value>error</value></fault></methodResponse>`,
	}
	for i, c := range cases {
		_, err := DecodeResponse(strings.NewReader(c), nil)
		if err != ErrUndefinedFault {
			t.Errorf("undefined fault expected in test case %d: %v", i+1, err)
		}
	}
}

func TestDecodeResponse_Scalar(t *testing.T) {
	resp := decodeString(t, responseDoc("<string>South Dakota</string>"), nil)
	require.Equal(t, 1, resp.Len())
	assert.Equal(t, String("South Dakota"), resp.Value(0))

	resp = decodeString(t, responseDoc("<int>123</int>", "<i4>-123</i4>"), nil)
	assert.Equal(t, []Value{Int(123), Int(-123)}, resp.Values)

	resp = decodeString(t, responseDoc("<boolean>1</boolean>", "<boolean>0</boolean>", "<boolean>true</boolean>"), nil)
	assert.Equal(t, []Value{Bool(true), Bool(false), Bool(false)}, resp.Values)

	resp = decodeString(t, responseDoc("<double>123.45</double>", "<double>-567.89</double>", "<double>-1e3</double>"), nil)
	assert.Equal(t, []Value{Double(123.45), Double(-567.89), Double(-1000)}, resp.Values)

	resp = decodeString(t, responseDoc("<double> 1.5 </double>", "<double>\n2\n</double>"), nil)
	assert.Equal(t, []Value{Double(1.5), Double(2)}, resp.Values)

	resp = decodeString(t, responseDoc("<base64>FPucA9l+</base64>"), nil)
	assert.Equal(t, []Value{Base64{0x14, 0xfb, 0x9c, 0x03, 0xd9, 0x7e}}, resp.Values)

	resp = decodeString(t, responseDoc("<string>a &amp; &lt;b&gt; \"c\"</string>"), nil)
	assert.Equal(t, String(`a & <b> "c"`), resp.Value(0))

	resp = decodeString(t, responseDoc("<string></string>"), nil)
	assert.Equal(t, String(""), resp.Value(0))
}

func TestDecodeResponse_DateTime(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	resp := decodeString(t, responseDoc("<dateTime.iso8601>19980717T14:08:55</dateTime.iso8601>"), loc)
	require.Equal(t, 1, resp.Len())
	got := resp.Q(0).Time()
	assert.True(t, got.Equal(time.Date(1998, time.July, 17, 14, 8, 55, 0, loc)))
	assert.True(t, got.Equal(time.Date(1998, time.July, 17, 19, 8, 55, 0, time.UTC)))

	// default is UTC
	resp = decodeString(t, responseDoc("<dateTime.iso8601>19980717T14:08:55</dateTime.iso8601>"), nil)
	assert.True(t, resp.Q(0).Time().Equal(time.Date(1998, time.July, 17, 14, 8, 55, 0, time.UTC)))
}

func TestDecodeResponse_Array(t *testing.T) {
	doc := responseDoc(`<array>
            <data>
                <value><i4>12</i4></value>
                <value><string>Egypt</string></value>
                <value><boolean>0</boolean></value>
                <value><double>123.45</double></value>
            </data>
        </array>`)
	resp := decodeString(t, doc, nil)
	require.Equal(t, 1, resp.Len())
	want := Array{Int(12), String("Egypt"), Bool(false), Double(123.45)}
	assert.True(t, Equal(want, resp.Value(0)), "unexpected value: %v", resp.Value(0))

	resp = decodeString(t, responseDoc("<array><data></data></array>", "<array></array>"), nil)
	assert.Equal(t, []Value{Array{}, Array{}}, resp.Values)

	// elements without a known data type are skipped
	resp = decodeString(t, responseDoc("<array><data><value>x</value><value><int>1</int></value></data></array>"), nil)
	assert.Equal(t, []Value{Array{Int(1)}}, resp.Values)
}

func TestDecodeResponse_Struct(t *testing.T) {
	for _, doc := range []string{
		responseDoc(`<struct>
            <member><name>lowerBound</name><value><i4>18</i4></value></member>
            <member><name>upperBound</name><value><i4>139</i4></value></member>
        </struct>`),
		responseDoc(`<struct>
            <member><value><i4>139</i4></value><name>upperBound</name></member>
            <member><name>lowerBound</name><value><i4>18</i4></value></member>
        </struct>`),
	} {
		resp := decodeString(t, doc, nil)
		require.Equal(t, 1, resp.Len())
		assert.Equal(t, Struct{"lowerBound": Int(18), "upperBound": Int(139)}, resp.Value(0))
	}

	// incomplete members are dropped
	resp := decodeString(t, responseDoc(`<struct>
            <member><name>a</name></member>
            <member><value><int>1</int></value></member>
            <member><name>b</name><value>untyped</value></member>
            <member><name>c</name><value><struct></struct></value></member>
        </struct>`), nil)
	assert.Equal(t, []Value{Struct{"c": Struct{}}}, resp.Values)
}

func TestDecodeResponse_ArrayOfStructs(t *testing.T) {
	doc := responseDoc(`<array><data>
            <value><struct>
                <member><name>id</name><value><int>1</int></value></member>
                <member><name>tags</name><value><array><data><value><string>x</string></value></data></array></value></member>
            </struct></value>
            <value><struct>
                <member><name>id</name><value><int>2</int></value></member>
                <member><name>tags</name><value><array><data></data></array></value></member>
            </struct></value>
        </data></array>`)
	resp := decodeString(t, doc, nil)
	q := resp.Q(0)
	s := q.Slice()
	require.Len(t, s, 2)
	assert.Equal(t, 1, s[0].Key("id").Int())
	assert.Equal(t, []string{"x"}, s[0].Key("tags").Strings())
	assert.Equal(t, 2, s[1].Key("id").Int())
	assert.Empty(t, s[1].Key("tags").Strings())
	assert.NoError(t, q.Err())
}

func TestDecodeResponse_SkipUnknown(t *testing.T) {
	resp := decodeString(t, responseDoc("untyped", "<nil/>", "<int>7</int>", ""), nil)
	assert.Equal(t, []Value{Int(7)}, resp.Values)

	// first known tag wins
	resp = decodeString(t, responseDoc("<unknown>1</unknown><int>8</int><string>a</string>"), nil)
	assert.Equal(t, []Value{Int(8)}, resp.Values)

	// param without value
	resp = decodeString(t, `<methodResponse><params><param></param></params></methodResponse>`, nil)
	assert.Equal(t, 0, resp.Len())
}

func TestDecodeResponse_Errors(t *testing.T) {
	cases := []struct {
		doc   string
		check func(error) bool
	}{
		{
			"<methodResponse><params>",
			func(err error) bool { var e *XMLParseError; return errors.As(err, &e) },
		},
		{
			"<methodResponse></params></methodResponse>",
			func(err error) bool { var e *XMLParseError; return errors.As(err, &e) },
		},
		{
			"",
			func(err error) bool { var e *XMLParseError; return errors.As(err, &e) },
		},
		{
			"<a></a><b></b>",
			func(err error) bool { var e *XMLParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<base64>!!!</base64>"),
			func(err error) bool { var e *XMLParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<dateTime.iso8601>1998-07-17T14:08:55</dateTime.iso8601>"),
			func(err error) bool { var e *DateParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<int>abc</int>"),
			func(err error) bool { var e *NumberParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<i4>2147483648</i4>"),
			func(err error) bool { var e *NumberParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<int> 1</int>"),
			func(err error) bool { var e *NumberParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<dateTime.iso8601>19980717T14:08:55Z</dateTime.iso8601>"),
			func(err error) bool { var e *DateParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<double>1,5</double>"),
			func(err error) bool { var e *NumberParseError; return errors.As(err, &e) },
		},
		{
			responseDoc("<struct><member><name>a</name><value><int>x</int></value></member></struct>"),
			func(err error) bool { var e *NumberParseError; return errors.As(err, &e) },
		},
	}
	for i, c := range cases {
		_, err := DecodeResponse(strings.NewReader(c.doc), nil)
		if err == nil || !c.check(err) {
			t.Errorf("unexpected error in test case %d: %v", i+1, err)
		}
	}
}

func TestDecodeResponse_Charset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<methodResponse><params><param><value><string>Küche Wohnzimmer</string></value></param></params></methodResponse>"
	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(doc))
	require.NoError(t, err)

	resp, err := DecodeResponse(bytes.NewReader(latin1), nil)
	require.NoError(t, err)
	assert.Equal(t, String("Küche Wohnzimmer"), resp.Value(0))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	zone := time.FixedZone("UTC+1", 60*60)
	values := []Value{
		String("Hello & <World>"),
		String(""),
		Int(0),
		Int(-2147483648),
		Int(2147483647),
		Double(123.45),
		Double(-0.001),
		Double(1e21),
		Bool(true),
		Bool(false),
		DateTime(time.Date(1972, time.October, 5, 23, 3, 54, 0, time.UTC)),
		Base64{0x14, 0xfb, 0x9c, 0x03, 0xd9, 0x7e},
		Base64{},
		Array{},
		Array{Int(1), String("a"), Array{Bool(true)}},
		Struct{},
		Struct{"a": Int(1), "b": Struct{"c": Array{Double(0.5)}}},
	}
	for _, out := range []*time.Location{time.UTC, zone} {
		params := make([]interface{}, len(values))
		for i, v := range values {
			params[i] = v
		}
		enc, err := EncodeParams(params, out)
		require.NoError(t, err)

		resp := decodeString(t, "<methodResponse><params>"+enc+"</params></methodResponse>", out)
		require.Equal(t, len(values), resp.Len())
		for i, v := range values {
			assert.True(t, Equal(v, resp.Value(i)), "value %d: want %v, got %v", i, v, resp.Value(i))
		}
	}
}
