package linear

import (
	"bytes"
)

const (
	pageSize = 65536

	// maxPages keeps every offset and size within uint32.
	maxPages = 65535

	sectionMemory byte = 5
	sectionExport byte = 7
	kindMemory    byte = 2
	limitsMinMax  byte = 1
)

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// memoryModule encodes a module with a single memory of initial..limit pages,
// exported as exportName.
func memoryModule(initial, limit uint32) []byte {
	var buf bytes.Buffer
	buf.Write(header)

	var mem bytes.Buffer
	writeLEB128u(&mem, 1)
	mem.WriteByte(limitsMinMax)
	writeLEB128u(&mem, initial)
	writeLEB128u(&mem, limit)
	writeSection(&buf, sectionMemory, mem.Bytes())

	var exp bytes.Buffer
	writeLEB128u(&exp, 1)
	writeLEB128u(&exp, uint32(len(exportName)))
	exp.WriteString(exportName)
	exp.WriteByte(kindMemory)
	writeLEB128u(&exp, 0)
	writeSection(&buf, sectionExport, exp.Bytes())

	return buf.Bytes()
}

const exportName = "memory"

func writeSection(w *bytes.Buffer, id byte, content []byte) {
	w.WriteByte(id)
	writeLEB128u(w, uint32(len(content)))
	w.Write(content)
}

func writeLEB128u(w *bytes.Buffer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			break
		}
	}
}
