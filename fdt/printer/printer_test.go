package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/internal/testutil"
)

func openTree(t *testing.T, b []byte) *fdt.Tree {
	t.Helper()
	tree, err := fdt.New(b)
	require.NoError(t, err)
	return tree
}

func TestPrintTree_RootOnly(t *testing.T) {
	blob := testutil.NewBuilder().
		BeginNode("").
		PropString("model", "x").
		EndNode().
		End().
		Bytes()

	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintTree(openTree(t, blob)))
	require.Equal(t, "/ {\n  model = \"x\"\n}\n", buf.String())
}

func TestPrintTree_Sample(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.IndentSize = 4
	require.NoError(t, New(&buf, opts).PrintTree(openTree(t, testutil.SampleBlob())))

	output := buf.String()
	t.Logf("Text output:\n%s", output)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	require.Equal(t, "/ {", lines[0])
	require.Equal(t, "}", lines[len(lines)-1])

	require.Contains(t, output, "    #address-cells = <2>\n")
	require.Contains(t, output, "    compatible = \"dtbkit,virt\", \"dtbkit,board\"\n")
	require.Contains(t, output, "    chosen {\n        stdout-path = \"/pl011@9000000\"\n    }\n")
	require.Contains(t, output, "        cpu@0 {\n")
	require.Contains(t, output, "            reg = 00 00 00 00\n")
	require.Contains(t, output, "        interrupts = 00 00 00 01 00 00 00 04\n")
	require.Contains(t, output, "        dma-coherent\n")
	require.Contains(t, output, "    reserved-memory {\n    }\n")
}

func TestPrintTree_MaxValueBytes(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.MaxValueBytes = 2
	require.NoError(t, New(&buf, opts).PrintTree(openTree(t, testutil.SampleBlob())))
	require.Contains(t, buf.String(), "interrupts = 00 00 ... (8 bytes)")
}

func TestPrintTree_AfterFixup(t *testing.T) {
	tree := openTree(t, testutil.SampleBlob())
	var before bytes.Buffer
	require.NoError(t, New(&before, DefaultOptions()).PrintTree(tree))

	_, err := tree.Fixup()
	require.NoError(t, err)
	var after bytes.Buffer
	require.NoError(t, New(&after, DefaultOptions()).PrintTree(tree))
	require.Equal(t, before.String(), after.String())
}

func TestPrintTree_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	require.NoError(t, New(&buf, opts).PrintTree(openTree(t, testutil.SampleBlob())))

	var root jsonNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))
	require.Equal(t, "/", root.Name)
	require.Len(t, root.Children, 5)
	require.Equal(t, "chosen", root.Children[0].Name)
	require.Equal(t, "model", root.Properties[2].Name)
	require.Equal(t, "string", root.Properties[2].Kind)
	require.Equal(t, "dtbkit,virt", root.Properties[2].Value)
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestPrintTree_WriteError(t *testing.T) {
	w := &failingWriter{}
	err := New(w, DefaultOptions()).PrintTree(openTree(t, testutil.SampleBlob()))
	require.EqualError(t, err, "disk full")
	require.Equal(t, 1, w.n, "writes stop after the first failure")
}

func TestPrintHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintHeader(openTree(t, testutil.SampleBlob())))
	require.Contains(t, buf.String(), "Magic: 0xd00dfeed\n")
	require.Contains(t, buf.String(), "Version: 17 (compatible with: 16)\n")
}

func TestPrintReservations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintReservations(openTree(t, testutil.SampleBlob())))
	require.Equal(t, "/memreserve/ 0: 0x0000000048000000-0x0000000048100000 (0x100000 bytes)\n", buf.String())

	buf.Reset()
	empty := testutil.NewBuilder().BeginNode("").EndNode().End().Bytes()
	require.NoError(t, New(&buf, DefaultOptions()).PrintReservations(openTree(t, empty)))
	require.Equal(t, "No memory reservations\n", buf.String())
}

func TestPrintReservations_JSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	empty := testutil.NewBuilder().Bytes()
	require.NoError(t, New(&buf, opts).PrintReservations(openTree(t, empty)))
	require.Equal(t, "[]\n", buf.String())
}
