package fs

// Kind classifies what a path points at on disk.
type Kind int

const (
	KindAbsent Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "absent"
	}
}

// Entry describes a single file or directory found by Stat.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
}

// Kind reports whether the entry is a file or a directory.
func (e Entry) Kind() Kind {
	if e.IsDir {
		return KindDirectory
	}
	return KindFile
}

func isDotfile(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
