package ports

// DocumentMerger reads and concatenates paged documents.
type DocumentMerger interface {
	// PageCount parses data and fails if it is not a readable document.
	PageCount(data []byte) (int, error)

	// Merge appends every page of every document, in argument order.
	Merge(docs [][]byte) ([]byte, error)
}
