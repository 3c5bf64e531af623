package tree

// Builder folds named entries into a Tree. Entries may arrive in any order;
// sorting them with SortByPathLength first only reduces the number of
// placeholder nodes.
type Builder struct {
	naming Naming
	tree   *Tree
}

// NewBuilder returns a Builder for one archive.
func NewBuilder(naming Naming) *Builder {
	return &Builder{
		naming: naming,
		tree:   newTree(naming.RootName()),
	}
}

// Add places the entry at fullPath and returns its node together with the
// synthesized names.
//
// The node is appended to the children of the node registered under its
// parent key, creating placeholder directories as needed. A directory whose
// key already belongs to a placeholder is absorbed into it, keeping the
// children gathered so far.
func (b *Builder) Add(fullPath string, isDir bool) (NodeID, Names) {
	t := b.tree
	names := b.naming.Names(fullPath, isDir)

	existing, registered := t.index[names.Key]
	if registered && isDir && existing != t.root && t.nodes[existing].placeholder {
		n := &t.nodes[existing]
		n.OriginName = names.Origin
		n.placeholder = false
		return existing, names
	}

	id := t.add(Node{
		OriginName:  names.Origin,
		Key:         names.Key,
		ParentKey:   names.Parent,
		IsDirectory: isDir,
	})
	parent := b.resolve(names.Parent, names.ParentPath)
	t.appendChild(parent, id)

	// Files are never parents, so they do not take over a key that is
	// already registered. The root key is never reassigned.
	if names.Key != RootKey && (isDir || !registered) {
		t.index[names.Key] = id
	}
	return id, names
}

// Tree returns the built tree. The Builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	return b.tree
}

// resolve returns the node registered under key, synthesizing it when it is
// missing. path is the archive path of the directory key names.
func (b *Builder) resolve(key, path string) NodeID {
	t := b.tree
	if key == "" {
		return b.ensureRoot("")
	}
	if id, ok := t.index[key]; ok {
		return id
	}
	if path == "" {
		return b.ensureRoot(key)
	}

	// The parent is resolved first so that a directory named like its own
	// parent gets a distinct ancestor instead of a self-reference.
	names := b.naming.Names(path, true)
	parent := b.resolve(names.Parent, names.ParentPath)
	id := t.add(Node{
		OriginName:  names.Origin,
		Key:         key,
		ParentKey:   names.Parent,
		IsDirectory: true,
		placeholder: true,
	})
	t.index[key] = id
	t.appendChild(parent, id)
	return id
}

// ensureRoot creates the synthetic root on first use and registers key as an
// alias of it.
func (b *Builder) ensureRoot(key string) NodeID {
	t := b.tree
	if t.root < 0 {
		t.root = t.add(Node{
			OriginName:  b.naming.RootName(),
			Key:         key,
			IsDirectory: true,
			placeholder: true,
		})
		t.index[RootKey] = t.root
	}
	if _, ok := t.index[key]; !ok {
		t.index[key] = t.root
	}
	return t.root
}
