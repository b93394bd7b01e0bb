package bm25

import (
	"encoding/binary"
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/docdex/docdex"
)

// Persisted artifact suffixes. The two files form a matched pair: scores
// from the index are meaningless against any other record slice.
const (
	indexSuffix   = "_bm25.gob"
	recordsSuffix = "_records.gob"
)

type indexArtifact struct {
	Index    *Index
	Checksum uint64
}

type recordsArtifact struct {
	Records  []docdex.DocumentRecord
	Checksum uint64
}

// checksum fingerprints the record corpus. Both artifacts carry the same
// value so a mismatched pair is detected at load time.
func checksum(records []docdex.DocumentRecord) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(records)))
	h.Write(buf[:])
	for _, r := range records {
		h.WriteString(r.URL)
		h.WriteString("\x00")
		h.WriteString(r.Title)
		h.WriteString("\x00")
		h.WriteString(r.Text)
		h.WriteString("\x00")
	}
	return h.Sum64()
}

// Save writes the index and its source records as <base>_bm25.gob and
// <base>_records.gob. Both writes go through a temp file and rename so a
// crash never leaves a truncated artifact behind.
func Save(base string, idx *Index, records []docdex.DocumentRecord) error {
	if idx.Len() != len(records) {
		return docdex.Errorf(docdex.EINVALID, "index has %d documents but %d records given", idx.Len(), len(records))
	}
	sum := checksum(records)
	if err := writeGob(base+indexSuffix, indexArtifact{Index: idx, Checksum: sum}); err != nil {
		return err
	}
	return writeGob(base+recordsSuffix, recordsArtifact{Records: records, Checksum: sum})
}

// Load reads a previously saved index/records pair. A missing artifact is
// EUNAVAILABLE so callers can report "index not built yet"; a pair that
// fails the checksum or length check is EINTERNAL.
func Load(base string) (*Index, []docdex.DocumentRecord, error) {
	var ia indexArtifact
	if err := readGob(base+indexSuffix, &ia); err != nil {
		return nil, nil, err
	}
	var ra recordsArtifact
	if err := readGob(base+recordsSuffix, &ra); err != nil {
		return nil, nil, err
	}

	if ia.Checksum != ra.Checksum {
		return nil, nil, docdex.Errorf(docdex.EINTERNAL, "index and record artifacts do not match, rebuild the index")
	}
	if ia.Index == nil || ia.Index.Len() != len(ra.Records) {
		return nil, nil, docdex.Errorf(docdex.EINTERNAL, "index and record artifacts disagree on corpus size, rebuild the index")
	}
	return ia.Index, ra.Records, nil
}

func writeGob(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "create artifact directory: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "create temp artifact: %v", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return docdex.Errorf(docdex.EINTERNAL, "encode artifact %s: %v", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "close temp artifact: %v", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "rename artifact into place: %v", err)
	}
	return nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return docdex.Errorf(docdex.EUNAVAILABLE, "artifact %s not found, build the index first", filepath.Base(path))
		}
		return docdex.Errorf(docdex.EINTERNAL, "open artifact %s: %v", filepath.Base(path), err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return docdex.Errorf(docdex.EINTERNAL, "decode artifact %s: %v", filepath.Base(path), err)
	}
	return nil
}
