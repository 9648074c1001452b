package testbed

import (
	"fmt"
	"strings"
	"testing"

	"github.com/wippyai/ucsbuf"
	"github.com/wippyai/ucsbuf/confstr"
	ucserr "github.com/wippyai/ucsbuf/errors"
)

// ingestor assembles rows into a Buffer the way a line protocol sender
// would: every row is checkpointed before its first field and rolled back
// wholesale when any field is rejected.
type ingestor struct {
	buf      *ucsbuf.Buffer
	table    string
	accepted int
	rejected int
}

func newIngestor(t *testing.T, conf string) *ingestor {
	t.Helper()
	c, err := confstr.Parse(conf)
	if err != nil {
		t.Fatalf("parse conf: %v", err)
	}
	table, ok := c.Get("table")
	if !ok {
		t.Fatalf("conf %q has no table key", conf)
	}
	return &ingestor{buf: ucsbuf.NewSize(64), table: table}
}

// row encodes the table name, the given fields and a trailing newline.
// string fields are one-byte code units; []uint16 and []uint32 fields take
// the two- and four-byte paths.
func (in *ingestor) row(fields ...any) error {
	mark := in.buf.Tell()
	in.buf.EncodeUCS1([]byte(in.table))
	for _, f := range fields {
		var err error
		switch units := f.(type) {
		case string:
			in.buf.EncodeUCS1([]byte(units))
		case []uint16:
			_, err = in.buf.EncodeUCS2(units)
		case []uint32:
			_, err = in.buf.EncodeUCS4(units)
		default:
			panic(fmt.Sprintf("testbed: unsupported field type %T", f))
		}
		if err != nil {
			in.buf.Truncate(mark)
			in.rejected++
			return err
		}
	}
	in.buf.EncodeUCS1([]byte{'\n'})
	in.accepted++
	return nil
}

func (in *ingestor) payload() string {
	return string(in.buf.Bytes())
}

func TestIngest_MixedWidthRows(t *testing.T) {
	in := newIngestor(t, "tcp::addr=localhost:9009;table=weather;")
	defer in.buf.Free()

	if err := in.row(" city=Berlin temp=18.5"); err != nil {
		t.Fatalf("row 1: %v", err)
	}
	if err := in.row(" note=", []uint16{0xD83D, 0xDE00}); err != nil {
		t.Fatalf("row 2: %v", err)
	}
	if err := in.row(" city=", []uint32{'K', 0xF6, 'l', 'n'}); err != nil {
		t.Fatalf("row 3: %v", err)
	}

	want := "weather city=Berlin temp=18.5\n" +
		"weather note=\U0001F600\n" +
		"weather city=Köln\n"
	if got := in.payload(); got != want {
		t.Errorf("payload = %q, want %q", got, want)
	}
	if in.accepted != 3 || in.rejected != 0 {
		t.Errorf("accepted/rejected = %d/%d, want 3/0", in.accepted, in.rejected)
	}
}

func TestIngest_RejectedRowsRollBack(t *testing.T) {
	in := newIngestor(t, "tcp::addr=localhost:9009;table=weather;")
	defer in.buf.Free()

	if err := in.row(" temp=21"); err != nil {
		t.Fatalf("row 1: %v", err)
	}

	// The high surrogate is followed by a regular unit, so the whole row
	// (including the already-encoded " note=" field) must vanish.
	err := in.row(" note=", []uint16{0xD83D, 0x0041})
	if err == nil {
		t.Fatal("row 2: expected an error")
	}
	if u, ok := ucserr.Scalar(err); !ok || u != 0xD83D {
		t.Errorf("row 2 scalar = %#x (%v), want 0xd83d", u, ok)
	}
	if idx, ok := ucserr.Index(err); !ok || idx != 0 {
		t.Errorf("row 2 index = %d (%v), want 0", idx, ok)
	}

	if err := in.row(" temp=22"); err != nil {
		t.Fatalf("row 3: %v", err)
	}
	if err := in.row(" big=", []uint32{0x110000}); err == nil {
		t.Fatal("row 4: expected an error")
	}
	if err := in.row(" lone=", []uint16{0xDC00}); err == nil {
		t.Fatal("row 5: expected an error")
	}
	if err := in.row(" note=", []uint32{0x1F600}); err != nil {
		t.Fatalf("row 6: %v", err)
	}

	want := "weather temp=21\nweather temp=22\nweather note=\U0001F600\n"
	if got := in.payload(); got != want {
		t.Errorf("payload = %q, want %q", got, want)
	}
	if in.accepted != 3 || in.rejected != 3 {
		t.Errorf("accepted/rejected = %d/%d, want 3/3", in.accepted, in.rejected)
	}

	// A clean run over only the good rows must produce identical bytes.
	clean := newIngestor(t, "tcp::addr=localhost:9009;table=weather;")
	defer clean.buf.Free()
	clean.row(" temp=21")
	clean.row(" temp=22")
	clean.row(" note=", []uint32{0x1F600})
	if in.payload() != clean.payload() {
		t.Errorf("rolled-back payload diverges from clean run:\n%q\n%q", in.payload(), clean.payload())
	}
}

func TestIngest_ManyRowsGrowChain(t *testing.T) {
	in := newIngestor(t, "tcp::addr=localhost:9009;table=t;")
	defer in.buf.Free()

	var want strings.Builder
	for i := 0; i < 200; i++ {
		field := fmt.Sprintf(" n=%d", i)
		if err := in.row(field); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		want.WriteString("t" + field + "\n")
	}

	if got := in.payload(); got != want.String() {
		t.Fatalf("payload diverged (%d vs %d bytes)", len(got), want.Len())
	}
	st := in.buf.Stats()
	if st.Links < 2 {
		t.Errorf("expected the chain to grow past one link, got %+v", st)
	}
	if st.Committed != want.Len() {
		t.Errorf("Committed = %d, want %d", st.Committed, want.Len())
	}
}

func TestIngest_ClearRetainsCapacity(t *testing.T) {
	in := newIngestor(t, "tcp::addr=localhost:9009;table=t;")
	defer in.buf.Free()

	fill := func() {
		for i := 0; i < 200; i++ {
			if err := in.row(fmt.Sprintf(" n=%d", i)); err != nil {
				t.Fatalf("row %d: %v", i, err)
			}
		}
	}

	fill()
	first := in.payload()
	before := in.buf.Stats()

	in.buf.Clear()
	fill()

	if got := in.payload(); got != first {
		t.Fatalf("payload after Clear diverged (%d vs %d bytes)", len(got), len(first))
	}
	after := in.buf.Stats()
	if got, want := after.Capacity+after.SpareCapacity, before.Capacity+before.SpareCapacity; got != want {
		t.Errorf("held capacity changed across Clear: %d, want %d", got, want)
	}
}
