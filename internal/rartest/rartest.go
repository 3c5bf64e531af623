// Package rartest writes small uncompressed RAR 4 archives for tests.
package rartest

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"testing"
)

// Block types and flags of the RAR 1.5-4.x header stream.
const (
	blockMain = 0x73
	blockFile = 0x74
	blockEnd  = 0x7b

	flagLongBlock = 0x8000
	flagDirectory = 0x00e0

	hostWin32    = 2
	unpackVer    = 29
	methodStored = 0x30

	attrDirectory = 0x10
	attrArchive   = 0x20

	// 2024-01-01 00:00:00 in MS-DOS format.
	dosTime = 0x58210000
)

// Member is one archive entry. Name uses rar's backslash separator.
type Member struct {
	Name    string
	Dir     bool
	Content string
}

// Build returns a stored RAR 4 archive holding members in order.
func Build(members []Member) []byte {
	var buf bytes.Buffer
	buf.WriteString("Rar!\x1a\x07\x00")
	writeBlock(&buf, blockMain, 0, make([]byte, 6))

	le := binary.LittleEndian
	for _, m := range members {
		flags := uint16(flagLongBlock)
		attr := uint32(attrArchive)
		if m.Dir {
			flags |= flagDirectory
			attr = attrDirectory
		}
		size := uint32(len(m.Content))

		var h []byte
		h = le.AppendUint32(h, size) // packed
		h = le.AppendUint32(h, size) // unpacked
		h = append(h, hostWin32)
		h = le.AppendUint32(h, crc32.ChecksumIEEE([]byte(m.Content)))
		h = le.AppendUint32(h, dosTime)
		h = append(h, unpackVer, methodStored)
		h = le.AppendUint16(h, uint16(len(m.Name)))
		h = le.AppendUint32(h, attr)
		h = append(h, m.Name...)

		writeBlock(&buf, blockFile, flags, h)
		buf.WriteString(m.Content)
	}
	writeBlock(&buf, blockEnd, 0, nil)
	return buf.Bytes()
}

// writeBlock emits a block header. The checksum is the low half of the
// CRC32 over everything after the checksum field.
func writeBlock(w *bytes.Buffer, typ byte, flags uint16, data []byte) {
	le := binary.LittleEndian
	head := []byte{typ}
	head = le.AppendUint16(head, flags)
	head = le.AppendUint16(head, uint16(7+len(data)))
	head = append(head, data...)
	w.Write(le.AppendUint16(nil, uint16(crc32.ChecksumIEEE(head))))
	w.Write(head)
}

// Write stores Build(members) at path.
func Write(t testing.TB, path string, members []Member) {
	t.Helper()
	if err := os.WriteFile(path, Build(members), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// Demo is a small tree with an explicit directory, a file at the root and a
// file under an implied directory.
var Demo = []Member{
	{Name: "folder1", Dir: true},
	{Name: `folder1\report.xlsx`, Content: "REPORT"},
	{Name: "readme.txt", Content: "README"},
	{Name: `folder1\sub\deep.txt`, Content: "DEEP"},
}
