package xmlrpc

import (
	"encoding/base64"
	"sort"
	"strconv"
	"strings"
	"time"
)

// wire format of dateTime.iso8601: yyyyMMdd'T'HH:mm:ss
const dateTimeLayout = "20060102T15:04:05"

// Only & and < are escaped. Servers of existing installations expect > and
// quotes unescaped.
var stringEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")

// EncodeParams converts native parameters (see NewValue) into a sequence of
// <param> elements. Date/time values are represented in the location out (UTC,
// if nil).
func EncodeParams(params []interface{}, out *time.Location) (string, error) {
	var b strings.Builder
	for _, p := range params {
		v, err := NewValue(p)
		if err != nil {
			return "", err
		}
		b.WriteString("<param><value>")
		encodeValue(&b, v, out)
		b.WriteString("</value></param>")
	}
	return b.String(), nil
}

// EncodeValue returns the content of a <value> element for v. An
// *UnsupportedTypeError is returned, if v or one of its elements is nil.
func EncodeValue(v Value, out *time.Location) (string, error) {
	if v == nil {
		return "", &UnsupportedTypeError{}
	}
	if err := checkValue(v); err != nil {
		return "", err
	}
	var b strings.Builder
	encodeValue(&b, v, out)
	return b.String(), nil
}

func encodeValue(b *strings.Builder, v Value, out *time.Location) {
	switch val := v.(type) {
	case String:
		b.WriteString("<string>")
		stringEscaper.WriteString(b, string(val))
		b.WriteString("</string>")
	case Int:
		b.WriteString("<int>")
		b.WriteString(strconv.FormatInt(int64(val), 10))
		b.WriteString("</int>")
	case Double:
		b.WriteString("<double>")
		b.WriteString(strconv.FormatFloat(float64(val), 'f', -1, 64))
		b.WriteString("</double>")
	case Bool:
		if val {
			b.WriteString("<boolean>1</boolean>")
		} else {
			b.WriteString("<boolean>0</boolean>")
		}
	case DateTime:
		if out == nil {
			out = time.UTC
		}
		b.WriteString("<dateTime.iso8601>")
		b.WriteString(time.Time(val).In(out).Format(dateTimeLayout))
		b.WriteString("</dateTime.iso8601>")
	case Base64:
		b.WriteString("<base64>")
		b.WriteString(base64.StdEncoding.EncodeToString(val))
		b.WriteString("</base64>")
	case Array:
		b.WriteString("<array><data>")
		for _, e := range val {
			b.WriteString("<value>")
			encodeValue(b, e, out)
			b.WriteString("</value>")
		}
		b.WriteString("</data></array>")
	case Struct:
		// sorted for a reproducible request
		names := make([]string, 0, len(val))
		for n := range val {
			names = append(names, n)
		}
		sort.Strings(names)
		b.WriteString("<struct>")
		for _, n := range names {
			b.WriteString("<member><name>")
			b.WriteString(n)
			b.WriteString("</name><value>")
			encodeValue(b, val[n], out)
			b.WriteString("</value></member>")
		}
		b.WriteString("</struct>")
	default:
		panic("xmlrpc: unexpected value type")
	}
}
