package engine

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/Sideloading-Research/Inference/pkg/logic/internalerr"
)

// rulePrefix marks a line to be loaded as a rule rather than a fact.
const rulePrefix = "Rule:"

// LoadFromFile loads facts and rules from a .inf file. Blank lines and
// lines starting with # are skipped, inline # comments are stripped, and
// a line prefixed with "Rule:" is parsed as a rule. Malformed lines are
// logged and skipped; only an unreadable or undecodable file is an error.
func (e *Engine) LoadFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %v: %w", path, err, internalerr.ErrFileRead)
	}

	content, err := decodeContent(raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, internalerr.ErrFileRead)
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}

		if strings.HasPrefix(line, rulePrefix) {
			err = e.AddRuleText(strings.TrimSpace(line[len(rulePrefix):]))
		} else {
			err = e.AddFactText(line)
		}
		if err != nil {
			log.Printf("warning: skipping line %d of %s: %v", lineNum, path, err)
		}
	}
	return scanner.Err()
}

// decodeContent decodes file bytes as UTF-8, falling back across legacy
// encodings in a fixed order.
func decodeContent(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	// UTF-16 is only attempted when a BOM identifies it; ISO 8859-1
	// accepts any byte sequence, so it is the effective last resort.
	fallbacks := []encoding.Encoding{
		unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
		unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
		charmap.ISO8859_1,
		charmap.Windows1252,
	}
	for _, enc := range fallbacks {
		out, err := enc.NewDecoder().Bytes(raw)
		if err == nil && utf8.Valid(out) {
			return string(out), nil
		}
	}
	return "", fmt.Errorf("no supported encoding")
}
