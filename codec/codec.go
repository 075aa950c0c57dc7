// Package codec (de)serializes a snapshot.FileSystem to a byte stream.
//
// The binary wire format is explicitly out of scope for this project (an
// "off-the-shelf length-prefixed tagged format" is assumed by the design);
// this package supplies a concrete, self-describing implementation so the
// system runs end to end. The framing (magic + format-version header,
// followed by a compressed body) follows the same two-field idea as the
// teacher's recordio package, without recordio's chunk/checksum machinery,
// which targets opaque streamed records rather than a tagged recursive tree.
package codec

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/fsmap/fsmap/fsmaperrors"
	"github.com/fsmap/fsmap/snapshot"
)

// magic identifies an fsmap snapshot file.
var magic = [4]byte{'F', 'S', 'M', 'P'}

// Format identifies the on-disk FileInfo layout.
type Format byte

const (
	// FormatA is the historical FileInfo{size,modified,accessed,created} layout.
	FormatA Format = 1
	// FormatB is the current, compact FileInfo{size,time} layout. Writers
	// MUST emit this revision.
	FormatB Format = 2
)

const (
	tagDir byte = iota
	tagFile
	tagSymlink
	tagOther
	tagError
)

// Save writes fs to w in Revision B form, compressed with zstd.
func Save(w io.Writer, fs *snapshot.FileSystem) (err error) {
	if _, err = w.Write(magic[:]); err != nil {
		return errors.Wrap(err, "codec: write magic")
	}
	if _, err = w.Write([]byte{byte(FormatB)}); err != nil {
		return errors.Wrap(err, "codec: write format")
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "codec: new zstd writer")
	}
	defer func() {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(zw)
	e := &encoder{w: bw}
	e.putMounts(fs.Mounts)
	e.putDirectory(fs.Root)
	if e.err != nil {
		return errors.Wrap(e.err, "codec: encode")
	}
	return bw.Flush()
}

// Load reads a FileSystem previously written by Save. It accepts both the
// legacy Revision A and current Revision B FileInfo layouts, keyed by the
// per-inode tag each was written with.
func Load(r io.Reader) (*snapshot.FileSystem, error) {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errors.Wrap(err, "codec: read header")
	}
	if hdr[0] != magic[0] || hdr[1] != magic[1] || hdr[2] != magic[2] || hdr[3] != magic[3] {
		return nil, fsmaperrors.E(fsmaperrors.Corrupt, "codec: bad magic")
	}
	switch Format(hdr[4]) {
	case FormatA, FormatB:
	default:
		return nil, fsmaperrors.E(fsmaperrors.Corrupt, "codec: unknown format revision")
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "codec: new zstd reader")
	}
	defer zr.Close()
	d := &decoder{r: bufio.NewReader(zr)}
	mounts := d.getMounts()
	root := d.getDirectory()
	if d.err != nil {
		return nil, errors.Wrap(d.err, "codec: decode")
	}
	return &snapshot.FileSystem{Mounts: mounts, Root: root}, nil
}

// --- encoder ---

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *encoder) putUvarint(v uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	if _, err := e.w.Write(buf[:n]); err != nil {
		e.fail(err)
	}
}

func (e *encoder) putVarint(v int64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], v)
	if _, err := e.w.Write(buf[:n]); err != nil {
		e.fail(err)
	}
}

func (e *encoder) putUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := e.w.Write(buf[:]); err != nil {
		e.fail(err)
	}
}

func (e *encoder) putByte(b byte) {
	if err := e.w.WriteByte(b); err != nil {
		e.fail(err)
	}
}

func (e *encoder) putBytes(b []byte) {
	e.putUvarint(uint64(len(b)))
	if len(b) == 0 {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.fail(err)
	}
}

func (e *encoder) putMounts(m *snapshot.Mounts) {
	devs := m.Devices()
	e.putUvarint(uint64(len(devs)))
	for _, dev := range devs {
		d, _ := m.Device(dev)
		e.putUint64(dev)
		e.putUvarint(uint64(d.Len()))
		d.Each(func(ino uint64, fi snapshot.FileInfo) {
			e.putUint64(ino)
			e.putByte(byte(FormatB))
			e.putUint64(fi.Size)
			e.putVarint(int64(fi.Time))
		})
	}
}

func (e *encoder) putDirectory(dir *snapshot.Directory) {
	e.putUint64(dir.Dev)
	e.putUvarint(uint64(len(dir.Entries)))
	for _, ne := range dir.Entries {
		e.putBytes(ne.Name)
		e.putEntry(ne.Entry)
	}
}

func (e *encoder) putEntry(ent snapshot.Entry) {
	switch ent.Kind {
	case snapshot.KindDir:
		e.putByte(tagDir)
		e.putDirectory(ent.Dir)
	case snapshot.KindFile:
		e.putByte(tagFile)
		e.putUint64(ent.Ino)
	case snapshot.KindSymlink:
		e.putByte(tagSymlink)
		e.putBytes(ent.Target)
	case snapshot.KindOther:
		e.putByte(tagOther)
		e.putUint64(ent.Ino)
	case snapshot.KindError:
		e.putByte(tagError)
		e.putBytes([]byte(ent.Message))
	}
}

// --- decoder ---

type decoder struct {
	r   *bufio.Reader
	err error
}

func (d *decoder) fail(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

func (d *decoder) getUvarint() uint64 {
	v, err := binary.ReadUvarint(d.r)
	d.fail(err)
	return v
}

func (d *decoder) getVarint() int64 {
	v, err := binary.ReadVarint(d.r)
	d.fail(err)
	return v
}

func (d *decoder) getUint64() uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		d.fail(err)
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (d *decoder) getByte() byte {
	b, err := d.r.ReadByte()
	d.fail(err)
	return b
}

func (d *decoder) getBytes() []byte {
	n := d.getUvarint()
	if d.err != nil || n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		d.fail(err)
		return nil
	}
	return buf
}

func (d *decoder) getMounts() *snapshot.Mounts {
	m := snapshot.NewMounts()
	ndev := d.getUvarint()
	for i := uint64(0); i < ndev && d.err == nil; i++ {
		dev := d.getUint64()
		dd := m.EnsureDevice(dev)
		ninode := d.getUvarint()
		for j := uint64(0); j < ninode && d.err == nil; j++ {
			ino := d.getUint64()
			format := Format(d.getByte())
			var fi snapshot.FileInfo
			switch format {
			case FormatA:
				size := d.getUint64()
				modified := d.getVarint()
				accessed := d.getVarint()
				created := d.getVarint()
				max := modified
				if accessed > max {
					max = accessed
				}
				if created > max {
					max = created
				}
				fi = snapshot.FileInfo{Size: size, Time: int32(max / 60)}
			case FormatB:
				size := d.getUint64()
				t := d.getVarint()
				fi = snapshot.FileInfo{Size: size, Time: int32(t)}
			default:
				d.fail(fsmaperrors.E(fsmaperrors.Corrupt, "codec: unknown inode format tag"))
				return m
			}
			dd.InsertInode(ino, fi)
		}
	}
	return m
}

func (d *decoder) getDirectory() *snapshot.Directory {
	dev := d.getUint64()
	dir := snapshot.NewDirectory(dev)
	n := d.getUvarint()
	for i := uint64(0); i < n && d.err == nil; i++ {
		name := d.getBytes()
		ent := d.getEntry()
		dir.Insert(name, ent)
	}
	return dir
}

func (d *decoder) getEntry() snapshot.Entry {
	tag := d.getByte()
	switch tag {
	case tagDir:
		return snapshot.DirEntry(d.getDirectory())
	case tagFile:
		return snapshot.File(d.getUint64())
	case tagSymlink:
		return snapshot.Symlink(d.getBytes())
	case tagOther:
		return snapshot.Other(d.getUint64())
	case tagError:
		return snapshot.Err(string(d.getBytes()))
	default:
		d.fail(fsmaperrors.E(fsmaperrors.Corrupt, "codec: unknown entry tag"))
		return snapshot.Err("corrupt entry")
	}
}
