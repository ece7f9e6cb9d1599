package orchestrator

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"os"
	"slices"

	"fortio.org/safecast"
	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

const (
	r1csMagic         = "r1cs"
	r1csHeaderSection = 1
	// The file header is magic, version and section count.
	r1csPreambleSize = 12
	// Each section starts with a u32 type and a u64 size.
	r1csSectionHeaderSize = 12
	// Header section fields after the prime: four u32 counts, a u64 label
	// count and a u32 constraint count.
	r1csHeaderTailSize = 4*4 + 8 + 4
	// maxFieldSize bounds n8 so a corrupt file cannot force a huge read.
	maxFieldSize = 1024
)

// ReadConstraintSystemHeader reads the header section of the constraint
// system at path.
func ReadConstraintSystemHeader(path string) (*domain.ConstraintSystemHeader, error) {
	f, err := os.Open(path) //nolint:gosec // path points into the staging directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedConstraintSystem, err.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedConstraintSystem, err.Error()), "path", path)
	}

	header, err := ParseConstraintSystemHeader(f, info.Size())
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return header, nil
}

// ParseConstraintSystemHeader walks the section table of a constraint system
// of the given size and decodes its header section. Only section headers and
// the header section itself are read.
func ParseConstraintSystemHeader(r io.ReaderAt, size int64) (*domain.ConstraintSystemHeader, error) {
	preamble := make([]byte, r1csPreambleSize)
	if err := readAt(r, preamble, 0, size); err != nil {
		return nil, err
	}
	if string(preamble[:4]) != r1csMagic {
		return nil, malformed("bad magic %q", preamble[:4])
	}
	sections := binary.LittleEndian.Uint32(preamble[8:12])

	offset := int64(r1csPreambleSize)
	for range sections {
		sh := make([]byte, r1csSectionHeaderSize)
		if err := readAt(r, sh, offset, size); err != nil {
			return nil, err
		}
		typ := binary.LittleEndian.Uint32(sh[0:4])
		sectionSize, err := safecast.Convert[int64](binary.LittleEndian.Uint64(sh[4:12]))
		if err != nil {
			return nil, malformed("section size: %v", err)
		}
		body := offset + r1csSectionHeaderSize
		if sectionSize > size-body {
			return nil, malformed("section %d overruns the file", typ)
		}

		if typ == r1csHeaderSection {
			return parseHeaderSection(r, body, sectionSize, size)
		}
		offset = body + sectionSize
	}

	return nil, zerr.With(zerr.Wrap(domain.ErrHeaderNotFound, "no section of type 1"), "sections", sections)
}

func parseHeaderSection(r io.ReaderAt, offset, sectionSize, size int64) (*domain.ConstraintSystemHeader, error) {
	n8buf := make([]byte, 4)
	if err := readAt(r, n8buf, offset, size); err != nil {
		return nil, err
	}
	n8 := binary.LittleEndian.Uint32(n8buf)
	if n8 == 0 || n8 > maxFieldSize {
		return nil, malformed("field size %d", n8)
	}
	fieldSize, err := safecast.Convert[int](n8)
	if err != nil {
		return nil, malformed("field size: %v", err)
	}
	if int64(4+fieldSize+r1csHeaderTailSize) > sectionSize {
		return nil, malformed("header section too short")
	}

	buf := make([]byte, fieldSize+r1csHeaderTailSize)
	if err := readAt(r, buf, offset+4, size); err != nil {
		return nil, err
	}

	// The prime is little-endian; big.Int wants big-endian.
	primeBytes := slices.Clone(buf[:fieldSize])
	slices.Reverse(primeBytes)
	tail := buf[fieldSize:]

	return &domain.ConstraintSystemHeader{
		FieldSize:     n8,
		Prime:         domain.NewBigInt(new(big.Int).SetBytes(primeBytes)),
		Wires:         binary.LittleEndian.Uint32(tail[0:4]),
		PublicOutputs: binary.LittleEndian.Uint32(tail[4:8]),
		PublicInputs:  binary.LittleEndian.Uint32(tail[8:12]),
		PrivateInputs: binary.LittleEndian.Uint32(tail[12:16]),
		Labels:        binary.LittleEndian.Uint64(tail[16:24]),
		Constraints:   binary.LittleEndian.Uint32(tail[24:28]),
	}, nil
}

func readAt(r io.ReaderAt, buf []byte, offset, size int64) error {
	if offset < 0 || offset+int64(len(buf)) > size {
		return malformed("truncated at offset %d", offset)
	}
	if _, err := r.ReadAt(buf, offset); err != nil {
		return malformed("read at offset %d: %v", offset, err)
	}
	return nil
}

func malformed(format string, args ...any) error {
	return zerr.Wrap(domain.ErrMalformedConstraintSystem, fmt.Sprintf(format, args...))
}
