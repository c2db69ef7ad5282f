package mock

import "github.com/fwojciec/docnav"

var _ docnav.MetaReader = (*MetaReader)(nil)

// MetaReader is a mock implementation of docnav.MetaReader.
type MetaReader struct {
	ReadMetaFn func(src []byte) (docnav.PageMeta, error)
}

func (r *MetaReader) ReadMeta(src []byte) (docnav.PageMeta, error) {
	return r.ReadMetaFn(src)
}
