package lookup

// defaultTable is a coarse ADF p-value table for the constant-only
// regression, used when no sample-size specific tables are supplied.
var defaultTable = MustTable([]Point{
	{-10.0, 0.00001},
	{-9.0, 0.00002},
	{-8.0, 0.00005},
	{-7.0, 0.0001},
	{-6.0, 0.0005},
	{-5.0, 0.001},
	{-4.0, 0.005},
	{-3.5, 0.01},
	{-3.0, 0.025},
	{-2.5, 0.05},
	{-2.0, 0.1},
	{-1.5, 0.2},
	{-1.0, 0.5},
	{0.0, 0.99},
})

// Default returns the built-in p-value table.
func Default() *Table {
	return defaultTable
}
