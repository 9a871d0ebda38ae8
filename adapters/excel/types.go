package excel

// RawTable is a file's cells before type inference. Every row has one cell
// per header.
type RawTable struct {
	Headers []string
	Rows    [][]string
}
