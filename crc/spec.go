package crc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Spec file keys.
const (
	KeyWidth           = "Width"
	KeyPolynomial      = "Polynomial"
	KeyInitialValue    = "InitialValue"
	KeyFinalXOR        = "FinalXORvalue"
	KeyInputReflected  = "InputReflected"
	KeyResultReflected = "ResultReflected"
)

// Spec is the result of reading a spec file.
type Spec struct {
	// Config holds the parsed parameters, defaults for missing keys
	Config Config

	// Ignored lists unrecognized keys as "key (line N)" in file order
	Ignored []string
}

// LoadSpec reads a spec file from disk.
func LoadSpec(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Reason: "cannot open spec file", Err: err}
	}
	defer func() { _ = f.Close() }()

	spec, err := ParseSpec(f)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Source = path
		}
		return nil, err
	}
	return spec, nil
}

// ParseSpec reads "Key Value" lines from r. Values are hexadecimal with an
// optional 0x prefix; Width is 8, 16 or 32. Blank lines and lines starting
// with '#' are skipped. Unknown keys are collected in Spec.Ignored.
//
// The returned config is validated, so a bad width fails here and never at
// checksum time.
func ParseSpec(r io.Reader) (*Spec, error) {
	spec := &Spec{Config: DefaultConfig()}
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		key := fields[0]
		if !isKnownKey(key) {
			spec.Ignored = append(spec.Ignored, fmt.Sprintf("%s (line %d)", key, lineNum))
			continue
		}
		if len(fields) < 2 {
			return nil, &ConfigError{Line: lineNum, Reason: fmt.Sprintf("missing value for %s", key)}
		}

		if err := spec.apply(key, fields[1]); err != nil {
			return nil, &ConfigError{Line: lineNum, Reason: fmt.Sprintf("invalid value for %s", key), Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Reason: "failed to read spec", Err: err}
	}

	if err := spec.Config.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func isKnownKey(key string) bool {
	switch key {
	case KeyWidth, KeyPolynomial, KeyInitialValue, KeyFinalXOR, KeyInputReflected, KeyResultReflected:
		return true
	}
	return false
}

func (s *Spec) apply(key, value string) error {
	if key == KeyWidth {
		switch value {
		case "8", "16", "32":
			s.Config.Width, _ = strconv.Atoi(value)
			return nil
		}
		return fmt.Errorf("unsupported width %q (must be 8, 16 or 32)", value)
	}

	v, err := parseHex(value)
	if err != nil {
		return err
	}

	switch key {
	case KeyPolynomial:
		s.Config.Polynomial = v
	case KeyInitialValue:
		s.Config.InitialValue = v
	case KeyFinalXOR:
		s.Config.FinalXOR = v
	case KeyInputReflected:
		s.Config.ReflectInput, err = parseFlag(v)
	case KeyResultReflected:
		s.Config.ReflectOutput, err = parseFlag(v)
	}
	return err
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func parseFlag(v uint32) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("flag must be 0 or 1, got %d", v)
}

// WriteSpec writes cfg in spec file format.
func WriteSpec(w io.Writer, cfg Config) error {
	digits := cfg.Width / 4
	flag := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	_, err := fmt.Fprintf(w, "%s %d\n%s %0*X\n%s %0*X\n%s %0*X\n%s %d\n%s %d\n",
		KeyWidth, cfg.Width,
		KeyPolynomial, digits, cfg.Polynomial,
		KeyInitialValue, digits, cfg.InitialValue,
		KeyFinalXOR, digits, cfg.FinalXOR,
		KeyInputReflected, flag(cfg.ReflectInput),
		KeyResultReflected, flag(cfg.ReflectOutput),
	)
	return err
}
