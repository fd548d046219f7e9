/*
Package dtb provides a high-level API over the fdt packages for the common
one-shot jobs: dump a blob, pull out its system info, count or validate it.

# Quick Start

Print a blob the way a booting kernel would log it:

	t, err := dtb.Open("board.dtb")
	if err != nil {
	    log.Fatal(err)
	}
	defer t.Close()

	err = dtb.ParseDeviceTree(t, os.Stdout, dtb.DefaultParseOptions())

Read RAM layout without touching the file:

	info, err := dtb.SystemInfo("board.dtb")
	fmt.Printf("RAM at 0x%x, %d bytes\n", info.RAMBase, info.RAMSize)

# Byte order

Open maps the file privately, so ParseDeviceTree's in-place fixup never
reaches the disk. Trees built with FromBytes are fixed up in the caller's
slice.
*/
package dtb
