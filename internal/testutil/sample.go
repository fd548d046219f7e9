package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Values baked into SampleBlob.
const (
	SampleModel       = "dtbkit,virt"
	SampleStdoutPath  = "/pl011@9000000"
	SampleRAMBase     = 0x4000_0000
	SampleRAMSize     = 0x0800_0000
	SampleReserveAddr = 0x4800_0000
	SampleReserveSize = 0x0010_0000
	SampleBootCPU     = 0
	SampleNodes       = 7
)

// SampleBuilder returns a builder preloaded with a small virt-style board.
//
//	/ {
//	    #address-cells = <2>; #size-cells = <2>;
//	    model; compatible;
//	    chosen { stdout-path; };
//	    memory@40000000 { device_type; reg; };
//	    cpus { cpu@0 { compatible; reg; }; };
//	    pl011@9000000 { compatible; reg; clock-names; interrupts; dma-coherent; };
//	    reserved-memory { };
//	};
func SampleBuilder() *Builder {
	b := NewBuilder()
	b.BootCPU = SampleBootCPU
	b.Reserve(SampleReserveAddr, SampleReserveSize)

	b.BeginNode("").
		PropU32("#address-cells", 2).
		PropU32("#size-cells", 2).
		PropString("model", SampleModel).
		PropStrings("compatible", SampleModel, "dtbkit,board").
		BeginNode("chosen").
		PropString("stdout-path", SampleStdoutPath).
		EndNode().
		BeginNode("memory@40000000").
		PropString("device_type", "memory").
		PropU64("reg", SampleRAMBase, SampleRAMSize).
		EndNode().
		BeginNode("cpus").
		PropU32("#address-cells", 1).
		PropU32("#size-cells", 0).
		BeginNode("cpu@0").
		PropStrings("compatible", "arm,cortex-a53").
		PropU32("reg", 0).
		EndNode().
		EndNode().
		Nop().
		BeginNode("pl011@9000000").
		PropStrings("compatible", "arm,pl011", "arm,primecell").
		PropU64("reg", 0x0900_0000, 0x1000).
		PropStrings("clock-names", "uartclk", "apb_pclk").
		Prop("interrupts", []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x04}).
		PropEmpty("dma-coherent").
		EndNode().
		BeginNode("reserved-memory").
		EndNode().
		EndNode().
		End()
	return b
}

// SampleBlob returns the SampleBuilder blob.
func SampleBlob() []byte {
	return SampleBuilder().Bytes()
}

// WriteBlob writes b into a temp dir and returns the path.
func WriteBlob(t *testing.T, name string, b []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write blob: %v", err)
	}
	return path
}
