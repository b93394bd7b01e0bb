// Package fs implements filesystem-backed storage: the per-site JSONL
// record corpus and read-only access to the raw page trees.
package fs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/docdex/docdex"
)

const recordsSuffix = "_records.jsonl"

// RecordStore persists a site's document records as one JSON object per
// line. Writes are whole-corpus: the file is replaced atomically, never
// appended to.
type RecordStore struct {
	Dir string
}

// Path returns the record file location for a site.
func (s *RecordStore) Path(siteID string) string {
	return filepath.Join(s.Dir, siteID+recordsSuffix)
}

// WriteRecords replaces the site's record file with the given records. The
// write goes through a temp file and rename so readers never observe a
// partial corpus.
func (s *RecordStore) WriteRecords(siteID string, records []docdex.DocumentRecord) error {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return docdex.Errorf(docdex.EINVALID, "record %d: %s", i, docdex.ErrorMessage(err))
		}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "create data directory: %v", err)
	}

	tmp, err := os.CreateTemp(s.Dir, siteID+".tmp-*")
	if err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "create temp record file: %v", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			tmp.Close()
			return docdex.Errorf(docdex.EINTERNAL, "encode record %d: %v", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return docdex.Errorf(docdex.EINTERNAL, "flush record file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "close record file: %v", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(siteID)); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "rename record file into place: %v", err)
	}
	return nil
}

// ReadRecords loads a site's records in stored order. A missing file is
// EUNAVAILABLE; a malformed line is EINTERNAL and names the line.
func (s *RecordStore) ReadRecords(siteID string) ([]docdex.DocumentRecord, error) {
	f, err := os.Open(s.Path(siteID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docdex.Errorf(docdex.EUNAVAILABLE, "no record file for site %q, build the corpus first", siteID)
		}
		return nil, docdex.Errorf(docdex.EINTERNAL, "open record file: %v", err)
	}
	defer f.Close()

	var records []docdex.DocumentRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var r docdex.DocumentRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, docdex.Errorf(docdex.EINTERNAL, "record file for %q line %d: %v", siteID, line, err)
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "read record file for %q: %v", siteID, err)
	}
	return records, nil
}
