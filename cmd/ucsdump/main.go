package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/term"

	"github.com/wippyai/ucsbuf"
)

func main() {
	var (
		width       = flag.Int("width", 1, "Code unit width in bytes (1, 2 or 4)")
		unitsStr    = flag.String("units", "", "Hex code units to encode (space or comma separated)")
		text        = flag.String("text", "", "Literal text converted to code units of the chosen width")
		showStats   = flag.Bool("stats", false, "Print buffer statistics after encoding")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *unitsStr == "" && *text == "" {
		fmt.Fprintln(os.Stderr, "Usage: ucsdump -width 1|2|4 -units \"48 c3 a9 ...\" [-stats]")
		fmt.Fprintln(os.Stderr, "       ucsdump -width 1|2|4 -text \"literal\" [-stats]")
		fmt.Fprintln(os.Stderr, "       ucsdump -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*width, *unitsStr, *text, *showStats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(width int, unitsStr, text string, showStats bool) error {
	if unitsStr != "" && text != "" {
		return fmt.Errorf("-units and -text are mutually exclusive")
	}

	var units []uint32
	var err error
	if unitsStr != "" {
		units, err = parseUnits(unitsStr)
	} else {
		units, err = textUnits(width, text)
	}
	if err != nil {
		return err
	}

	buf := ucsbuf.New()
	defer buf.Free()

	view, err := encode(buf, width, units)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	fmt.Printf("Width: %d\n", width)
	fmt.Printf("Units: %d\n", len(units))
	fmt.Printf("UTF-8: %d bytes\n", view.Len())
	fmt.Printf("\nBytes: % x\n", view.Bytes())
	fmt.Printf("Text:  %q\n", view.String())

	if showStats {
		st := buf.Stats()
		fmt.Printf("\nBuffer:\n")
		fmt.Printf("  Committed:   %d\n", st.Committed)
		fmt.Printf("  Capacity:    %d\n", st.Capacity)
		fmt.Printf("  Links:       %d\n", st.Links)
		fmt.Printf("  Spare links: %d\n", st.SpareLinks)
		fmt.Printf("  Utilization: %.2f\n", st.Utilization())
	}

	return nil
}

// parseUnits splits a "48 c3a9 1f600" style string into code unit values.
func parseUnits(s string) ([]uint32, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("no code units in %q", s)
	}
	units := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimPrefix(f, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
		units[i] = uint32(v)
	}
	return units, nil
}

// textUnits converts a literal string into code units of the given width.
// Width 2 goes through UTF-16, so supplementary characters become surrogate
// pairs, exactly what a width-2 host string would hand the encoder.
func textUnits(width int, text string) ([]uint32, error) {
	runes := []rune(text)
	switch width {
	case 1:
		units := make([]uint32, len(runes))
		for i, r := range runes {
			if r > 0xFF {
				return nil, fmt.Errorf("%q does not fit in a one-byte code unit", r)
			}
			units[i] = uint32(r)
		}
		return units, nil
	case 2:
		encoded := utf16.Encode(runes)
		units := make([]uint32, len(encoded))
		for i, u := range encoded {
			units[i] = uint32(u)
		}
		return units, nil
	case 4:
		units := make([]uint32, len(runes))
		for i, r := range runes {
			units[i] = uint32(r)
		}
		return units, nil
	}
	return nil, fmt.Errorf("width must be 1, 2 or 4, got %d", width)
}

// encode narrows the units to the width's unit type and commits them.
func encode(buf *ucsbuf.Buffer, width int, units []uint32) (ucsbuf.View, error) {
	switch width {
	case 1:
		narrow := make([]byte, len(units))
		for i, u := range units {
			if u > 0xFF {
				return ucsbuf.View{}, fmt.Errorf("unit 0x%X does not fit in one byte (index %d)", u, i)
			}
			narrow[i] = byte(u)
		}
		return buf.EncodeUCS1(narrow), nil
	case 2:
		narrow := make([]uint16, len(units))
		for i, u := range units {
			if u > 0xFFFF {
				return ucsbuf.View{}, fmt.Errorf("unit 0x%X does not fit in two bytes (index %d)", u, i)
			}
			narrow[i] = uint16(u)
		}
		return buf.EncodeUCS2(narrow)
	case 4:
		return buf.EncodeUCS4(units)
	}
	return ucsbuf.View{}, fmt.Errorf("width must be 1, 2 or 4, got %d", width)
}
