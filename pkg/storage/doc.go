// Package storage lays out collected images on disk.
//
// Images for a query live in {base}/{query}/ and are named
// {provider}_{index}.jpg, where index is zero-padded to the number of digits
// in the run's stop bound (PadWidth). Bytes are written verbatim through a
// temporary file and a rename; an existing file with the same name is
// replaced.
//
//	m, err := storage.NewManager("./out", "cats", 0o755)
//	name := storage.FileName("bing", 7, storage.PadWidth(28)) // bing_07.jpg
//	n, err := m.SaveImage(bytes.NewReader(data), name)
package storage
