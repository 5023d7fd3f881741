// Package markup writes the ray tracer's flat tag-with-attributes format.
//
// Records look like XML start tags, one per line:
//
//	<Mesh name="Cube" shader="Material">
//	    <Vert idx="0" coord="1.000000 1.000000 -1.000000">
//	</Mesh>
//
// Only container records are closed. Attribute values are written verbatim
// with no escaping, and floating-point numbers always use fixed-point "%f"
// formatting; the consuming renderer depends on both.
//
// A [Writer] keeps the first error it encounters and turns every later call
// into a no-op, so serializers can write a whole record and check [Writer.Err]
// or [Writer.Flush] once.
package markup

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Attr is one key="value" pair.
type Attr struct {
	Key   string
	Value string
}

// String is a verbatim string attribute.
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Int is an integer attribute.
func Int(key string, v int) Attr {
	return Attr{Key: key, Value: strconv.Itoa(v)}
}

// Bool is a 0/1 attribute.
func Bool(key string, v bool) Attr {
	if v {
		return Attr{Key: key, Value: "1"}
	}
	return Attr{Key: key, Value: "0"}
}

// Float is a fixed-point attribute.
func Float(key string, v float64) Attr {
	return Attr{Key: key, Value: FormatFloat(v)}
}

// Floats joins fixed-point values with single spaces.
func Floats(key string, vs ...float64) Attr {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatFloat(v)
	}
	return Attr{Key: key, Value: strings.Join(parts, " ")}
}

// Ints joins integers with single spaces.
func Ints(key string, vs ...int) Attr {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return Attr{Key: key, Value: strings.Join(parts, " ")}
}

// Matrix writes a 4×4 matrix as a block: a leading newline, then one line
// of four fixed-point values per row.
func Matrix(key string, rows [4][4]float64) Attr {
	var b strings.Builder
	b.WriteByte('\n')
	for _, r := range rows {
		fmt.Fprintf(&b, "%f %f %f %f\n", r[0], r[1], r[2], r[3])
	}
	return Attr{Key: key, Value: b.String()}
}

// FormatFloat formats v the way every numeric field is written.
func FormatFloat(v float64) string {
	return fmt.Sprintf("%f", v)
}

// Writer emits records to an underlying stream.
type Writer struct {
	w       *bufio.Writer
	err     error
	records int
}

// NewWriter wraps w in a buffered record writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Tag writes an unindented record.
func (w *Writer) Tag(name string, attrs ...Attr) {
	w.Nested("", name, attrs...)
}

// Nested writes a record prefixed by indent.
func (w *Writer) Nested(indent, name string, attrs ...Attr) {
	if w.err != nil {
		return
	}
	var b strings.Builder
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	b.WriteString(">\n")
	w.write(b.String())
	w.records++
}

// End closes a container record.
func (w *Writer) End(name string) {
	if w.err != nil {
		return
	}
	w.write("</" + name + ">\n")
}

// Printf writes a raw line fragment for records that do not follow the
// key="value" shape.
func (w *Writer) Printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	w.write(fmt.Sprintf(format, args...))
}

func (w *Writer) write(s string) {
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
	}
}

// Records returns the number of tag records written so far.
func (w *Writer) Records() int {
	return w.records
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes buffered data to the underlying stream and returns the first
// error seen by the writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.err = err
	}
	return w.err
}
