// Package backup encodes credentials to and from the flat text backup format:
// one "website username encryptedPassword" line per record. Passwords stay
// encrypted, so a backup is only readable with the key that sealed it.
package backup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/iudanet/gophvault/internal/models"
)

// fieldsPerLine is the number of whitespace separated tokens in a backup line.
const fieldsPerLine = 3

var (
	// ErrMalformedBackup matches every *MalformedLineError.
	ErrMalformedBackup = errors.New("malformed backup line")
	// ErrUnexportable indicates a record that cannot be written as a backup line.
	ErrUnexportable = errors.New("credential cannot be exported")
)

// MalformedLineError reports a backup line that did not split into exactly three tokens.
type MalformedLineError struct {
	Line   int // 1-based line number
	Fields int // tokens found on the line
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s %d: expected %d fields, got %d", ErrMalformedBackup, e.Line, fieldsPerLine, e.Fields)
}

func (e *MalformedLineError) Is(target error) bool {
	return target == ErrMalformedBackup
}

// Export writes one newline terminated line per record. Records whose fields are
// empty or contain whitespace are refused, since Import could not read them back.
func Export(w io.Writer, records []models.Credential) error {
	bw := bufio.NewWriter(w)

	for i := range records {
		rec := &records[i]
		if err := checkExportable(rec); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(bw, "%s %s %s\n", rec.Website, rec.Username, rec.Password); err != nil {
			return fmt.Errorf("failed to write backup line: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush backup: %w", err)
	}

	return nil
}

// Import parses a backup. The first malformed line aborts the whole import and
// no records are returned. Returned records have no ID; they are appended as new rows.
func Import(r io.Reader) ([]models.Credential, error) {
	scanner := bufio.NewScanner(r)

	var records []models.Credential
	line := 0
	for scanner.Scan() {
		line++

		fields := strings.Fields(scanner.Text())
		if len(fields) != fieldsPerLine {
			return nil, &MalformedLineError{Line: line, Fields: len(fields)}
		}

		records = append(records, models.Credential{
			Website:  fields[0],
			Username: fields[1],
			Password: fields[2],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}

	return records, nil
}

func checkExportable(rec *models.Credential) error {
	for _, field := range []struct{ name, value string }{
		{"website", rec.Website},
		{"username", rec.Username},
		{"password", rec.Password},
	} {
		if field.value == "" || strings.IndexFunc(field.value, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: record %d has empty or whitespace %s", ErrUnexportable, rec.ID, field.name)
		}
	}
	return nil
}
