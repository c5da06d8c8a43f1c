// Package bundle reads and writes calculator bundles, zip archives
// that group variable files for transfer to eZ80 models. A bundle
// carries a METADATA member describing its target and a _CHECKSUM
// member holding the hex sum of the member CRCs.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/flate"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/model"
)

const (
	metadataName = "METADATA"
	checksumName = "_CHECKSUM"

	// Identifier is the fixed bundle_identifier metadata value.
	Identifier = "TI Bundle"
)

// Metadata is the METADATA member, stored as "key:value" lines.
type Metadata struct {
	// FormatVersion is the bundle format version, usually 1.
	FormatVersion int
	// TargetDevice is "83CE" or "84CE".
	TargetDevice string
	// TargetType describes the bundle's purpose, e.g. "CUSTOM".
	TargetType string
	// Comments is free text, "N/A" when empty.
	Comments string
}

// DefaultMetadata returns the metadata written for the given target
// model.
func DefaultMetadata(m model.Model) Metadata {
	device := "83CE"
	if m == model.TI84PCE {
		device = "84CE"
	}
	return Metadata{
		FormatVersion: 1,
		TargetDevice:  device,
		TargetType:    "CUSTOM",
		Comments:      "N/A",
	}
}

// Model resolves the target device field against the model registry.
func (md Metadata) Model() model.Model {
	if md.TargetDevice == "84CE" {
		return model.TI84PCE
	}
	return model.TI83PCE
}

func (md Metadata) encode() []byte {
	comments := md.Comments
	if comments == "" {
		comments = "N/A"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "bundle_identifier:%s\n", Identifier)
	fmt.Fprintf(&b, "bundle_format_version:%d\n", md.FormatVersion)
	fmt.Fprintf(&b, "bundle_target_device:%s\n", md.TargetDevice)
	fmt.Fprintf(&b, "bundle_target_type:%s\n", md.TargetType)
	fmt.Fprintf(&b, "bundle_comments:%s\n", comments)
	return []byte(b.String())
}

func parseMetadata(raw []byte) (Metadata, error) {
	fields := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return Metadata{}, fmt.Errorf("%w: metadata line %q", errs.ErrInvalidBundle, line)
		}
		fields[key] = value
	}
	if id := fields["bundle_identifier"]; id != Identifier {
		return Metadata{}, fmt.Errorf("%w: identifier %q", errs.ErrInvalidBundle, id)
	}
	version, err := strconv.Atoi(fields["bundle_format_version"])
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: format version %q", errs.ErrInvalidBundle, fields["bundle_format_version"])
	}
	return Metadata{
		FormatVersion: version,
		TargetDevice:  fields["bundle_target_device"],
		TargetType:    fields["bundle_target_type"],
		Comments:      fields["bundle_comments"],
	}, nil
}

// Member is one variable file inside a bundle.
type Member struct {
	// Name is the archive member name, typically "NAME.8xp" style.
	Name string
	// Data is the serialized variable file.
	Data []byte
}

// Bundle is a parsed calculator bundle.
type Bundle struct {
	Metadata Metadata
	Members  []Member
}

// Member returns the named member, or nil.
func (b *Bundle) Member(name string) *Member {
	for i := range b.Members {
		if b.Members[i].Name == name {
			return &b.Members[i]
		}
	}
	return nil
}

// registerFlate wires the zip archive to the flate implementation used
// for member compression.
func registerFlate(zw *zip.Writer) {
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
}

// Build serializes a bundle. Members with identical name and payload
// are written once; a repeated name with a different payload is an
// error. The _CHECKSUM member covers the CRCs of every member written
// before it, METADATA included.
func Build(members []Member, md Metadata) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	registerFlate(zw)

	var crcSum uint32
	write := func(name string, data []byte) error {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("bundle member %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("bundle member %s: %w", name, err)
		}
		crcSum += crc32.ChecksumIEEE(data)
		return nil
	}

	seen := make(map[string]uint64, len(members))
	for _, m := range members {
		digest := xxhash.Sum64(m.Data)
		if prev, ok := seen[m.Name]; ok {
			if prev == digest {
				continue
			}
			return nil, fmt.Errorf("%w: member %s appears twice with different contents", errs.ErrInvalidBundle, m.Name)
		}
		seen[m.Name] = digest
		if err := write(m.Name, m.Data); err != nil {
			return nil, err
		}
	}

	if err := write(metadataName, md.encode()); err != nil {
		return nil, err
	}
	if err := write(checksumName, []byte(fmt.Sprintf("%x\r\n", crcSum))); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close bundle: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a bundle and verifies its checksum against the member
// CRCs recorded in the archive.
func Parse(data []byte) (*Bundle, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidBundle, err)
	}
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	readMember := func(f *zip.File) ([]byte, error) {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("bundle member %s: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	b := &Bundle{}
	var crcSum uint32
	var checksum []byte
	sawMetadata := false

	for _, f := range zr.File {
		raw, err := readMember(f)
		if err != nil {
			return nil, err
		}
		switch f.Name {
		case checksumName:
			checksum = raw
			continue
		case metadataName:
			if b.Metadata, err = parseMetadata(raw); err != nil {
				return nil, err
			}
			sawMetadata = true
		default:
			b.Members = append(b.Members, Member{Name: f.Name, Data: raw})
		}
		crcSum += f.CRC32
	}

	if !sawMetadata {
		return nil, fmt.Errorf("%w: no %s member", errs.ErrInvalidBundle, metadataName)
	}
	if checksum == nil {
		return nil, fmt.Errorf("%w: no %s member", errs.ErrInvalidBundle, checksumName)
	}
	want := fmt.Sprintf("%x", crcSum)
	if got := strings.TrimRight(string(checksum), "\r\n"); got != want {
		return nil, fmt.Errorf("%w: stored %s, computed %s", errs.ErrBundleChecksum, got, want)
	}

	return b, nil
}
