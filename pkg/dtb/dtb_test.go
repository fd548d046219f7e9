package dtb

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/internal/testutil"
)

func TestParseDeviceTree(t *testing.T) {
	tree, err := FromBytes(testutil.SampleBlob())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ParseDeviceTree(tree, &buf, DefaultParseOptions()))
	require.Equal(t, fdt.OrderHost, tree.Order())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Magic: 0xd00dfeed\n"))
	require.Contains(t, out, "Reservation map at: 0x28\n/ {\n")
	require.Contains(t, out, "  model = \"dtbkit,virt\"\n")
	require.True(t, strings.HasSuffix(out, "}\n/memreserve/ 0: 0x0000000048000000-0x0000000048100000 (0x100000 bytes)\n"))
}

func TestParseDeviceTree_Twice(t *testing.T) {
	tree, err := FromBytes(testutil.SampleBlob())
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, ParseDeviceTree(tree, &first, DefaultParseOptions()))
	require.NoError(t, ParseDeviceTree(tree, &second, DefaultParseOptions()))
	require.Equal(t, first.String(), second.String())
}

func TestParseDeviceTree_Stages(t *testing.T) {
	tree, err := FromBytes(testutil.SampleBlob())
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := DefaultParseOptions()
	opts.Dump = false
	opts.Reservations = false
	require.NoError(t, ParseDeviceTree(tree, &buf, opts))
	require.True(t, strings.HasPrefix(buf.String(), "Magic: 0xd00dfeed\n"))
	require.NotContains(t, buf.String(), "{")
	require.NotContains(t, buf.String(), "memreserve")
}

func TestParseDeviceTree_NoHeader(t *testing.T) {
	tree, err := FromBytes(testutil.SampleBlob())
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := DefaultParseOptions()
	opts.Header = false
	require.NoError(t, ParseDeviceTree(tree, &buf, opts))
	require.True(t, strings.HasPrefix(buf.String(), "/ {\n"))
	require.NotContains(t, buf.String(), "Magic:")
}

func TestParseDeviceTree_MalformedTree(t *testing.T) {
	blob, l := testutil.NewBuilder().
		BeginNode("").
		PropU32("x", 1).
		EndNode().
		End().
		Build()
	binary.BigEndian.PutUint32(blob[l.StructOffset+12:], 0xffff)
	tree, err := FromBytes(blob)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Error(t, ParseDeviceTree(tree, &buf, DefaultParseOptions()))
	require.Zero(t, buf.Len())
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.dtb"))
	require.ErrorContains(t, err, "dtb file not found")
}

func TestOpen_LeavesFileAlone(t *testing.T) {
	orig := testutil.SampleBlob()
	path := testutil.WriteBlob(t, "board.dtb", orig)

	tree, err := Open(path)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, ParseDeviceTree(tree, &buf, DefaultParseOptions()))
	require.NoError(t, tree.Close())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, orig, onDisk)
}

func TestHeaderInfo(t *testing.T) {
	tree, err := FromBytes(testutil.SampleBlob())
	require.NoError(t, err)

	info, err := HeaderInfo(tree)
	require.NoError(t, err)
	require.Equal(t, "wire", info.Order)
	require.Equal(t, uint32(17), info.Header.Version)
	require.Equal(t, []Reservation{{Address: testutil.SampleReserveAddr, Size: testutil.SampleReserveSize}}, info.Reservations)
}

func TestSystemInfo(t *testing.T) {
	path := testutil.WriteBlob(t, "board.dtb", testutil.SampleBlob())

	info, err := SystemInfo(path)
	require.NoError(t, err)
	require.Equal(t, uint64(testutil.SampleRAMBase), info.RAMBase)
	require.Equal(t, uint64(testutil.SampleRAMSize), info.RAMSize)
	require.Equal(t, testutil.SampleModel, info.Model)
}

func TestStats(t *testing.T) {
	path := testutil.WriteBlob(t, "board.dtb", testutil.SampleBlob())

	stats, err := Stats(path)
	require.NoError(t, err)
	require.Equal(t, uint64(testutil.SampleNodes), stats.Nodes)
}

func TestValidate(t *testing.T) {
	good := testutil.WriteBlob(t, "good.dtb", testutil.SampleBlob())
	report, err := Validate(good)
	require.NoError(t, err)
	require.True(t, report.OK())

	bad := testutil.WriteBlob(t, "bad.dtb", testutil.NewBuilder().BeginNode("").End().Bytes())
	report, err = Validate(bad)
	require.ErrorContains(t, err, "dtb validation failed")
	require.NotNil(t, report)
	require.Len(t, report.Issues, 1)
}
