package previewfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/dendrascience/archive-preview/tree"
	"github.com/dendrascience/archive-preview/util"
)

const rootInode = 1

// FS is a read-only view of one preview tree.
type FS struct {
	tree       *tree.Tree
	stagingDir string
	inodes     map[tree.NodeID]uint64
	mounted    time.Time
}

// New returns a filesystem over t whose files are read from stagingDir.
func New(t *tree.Tree, stagingDir string) *FS {
	util.SetInode(rootInode)
	f := &FS{
		tree:       t,
		stagingDir: stagingDir,
		inodes:     make(map[tree.NodeID]uint64, t.Len()),
		mounted:    time.Now(),
	}
	root, _ := t.Root()
	for id := range t.Walk {
		if id == root {
			f.inodes[id] = rootInode
			continue
		}
		f.inodes[id] = util.GetNewInode()
	}
	return f
}

// Root returns the directory for the archive root. A tree without entries
// mounts as an empty directory.
func (f *FS) Root() (fs.Node, error) {
	root, ok := f.tree.Root()
	if !ok {
		return &Dir{fs: f, id: -1}, nil
	}
	return &Dir{fs: f, id: root}, nil
}

func (f *FS) node(id tree.NodeID) fs.Node {
	if f.tree.Node(id).IsDirectory {
		return &Dir{fs: f, id: id}
	}
	return &File{fs: f, id: id}
}

// entryName is the name a node is listed under. Origin names that cannot be
// used as a path component fall back to the node's key.
func entryName(n tree.Node) string {
	name := n.OriginName
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\x00") {
		return n.Key
	}
	return name
}

// Dir is a directory node.
type Dir struct {
	fs *FS
	id tree.NodeID
}

func (d *Dir) children() []tree.NodeID {
	if d.id < 0 {
		return nil
	}
	return d.fs.tree.Node(d.id).Children
}

// Attr returns directory attributes.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = rootInode
	if d.id >= 0 {
		a.Inode = d.fs.inodes[d.id]
	}
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = time.Now()
	return nil
}

// Lookup resolves a child by its listed name. When several children share
// a name the first one in archive order wins.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	for _, c := range d.children() {
		if entryName(d.fs.tree.Node(c)) == name {
			return d.fs.node(c), nil
		}
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists the children in archive order, skipping repeated names.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	children := d.children()
	dirents := make([]fuse.Dirent, 0, len(children))
	seen := make(map[string]bool, len(children))
	for _, c := range children {
		n := d.fs.tree.Node(c)
		name := entryName(n)
		if seen[name] {
			continue
		}
		seen[name] = true
		typ := fuse.DT_File
		if n.IsDirectory {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: d.fs.inodes[c],
			Name:  name,
			Type:  typ,
		})
	}
	return dirents, nil
}

// File is a staged archive member.
type File struct {
	fs *FS
	id tree.NodeID
}

func (f *File) stagedPath() string {
	return filepath.Join(f.fs.stagingDir, f.fs.tree.Node(f.id).Key)
}

// Attr reports the size of the staged copy, or zero while it is pending.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.fs.inodes[f.id]
	a.Mode = 0o444
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = time.Now()
	if st, err := os.Stat(f.stagedPath()); err == nil {
		a.Size = uint64(st.Size())
		a.Mtime = st.ModTime()
		a.Ctime = st.ModTime()
	}
	return nil
}

// ReadAll returns the staged bytes.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.stagedPath())
	if os.IsNotExist(err) {
		return nil, syscall.ENOENT
	}
	return data, err
}
