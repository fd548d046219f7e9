package main

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/joshuapare/dtbkit/internal/testutil"
)

func TestInfoCommand(t *testing.T) {
	tests := []struct {
		name        string
		json        bool
		yaml        bool
		wantContain []string
	}{
		{
			name:        "text",
			wantContain: []string{"Device Tree Blob", "Version:      17 (compatible with 16)", "Reservations: 1 at 0x28"},
		},
		{
			name:        "json",
			json:        true,
			wantContain: []string{"\"magic\": 3490578157", "\"order\": \"wire\"", "\"reservations\""},
		},
		{
			name:        "yaml",
			yaml:        true,
			wantContain: []string{"magic: 3490578157", "order: wire", "reservations:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json
			yamlOut = tt.yaml

			output, err := captureOutput(t, func() error {
				return runInfo([]string{sampleDTB(t)})
			})
			if err != nil {
				t.Fatalf("runInfo() error = %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			if tt.yaml {
				assertYAML(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestInfoCommand_BadMagic(t *testing.T) {
	resetFlags()
	blob := testutil.SampleBlob()
	blob[0] = 0
	path := testutil.WriteBlob(t, "bad.dtb", blob)

	_, err := captureOutput(t, func() error {
		return runInfo([]string{path})
	})
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
	assertContains(t, err.Error(), []string{"failed to open device tree", "bad magic"})
}

func TestReservedCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runReserved([]string{sampleDTB(t)})
	})
	if err != nil {
		t.Fatalf("runReserved() error = %v", err)
	}
	assertContains(t, output, []string{" 0: 0x0000000048000000-0x0000000048100000  1.0 MiB\n"})

	resetFlags()
	empty := testutil.WriteBlob(t, "empty.dtb", testutil.NewBuilder().BeginNode("").EndNode().End().Bytes())
	output, err = captureOutput(t, func() error {
		return runReserved([]string{empty})
	})
	if err != nil {
		t.Fatalf("runReserved() error = %v", err)
	}
	assertContains(t, output, []string{"No memory reservations"})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runReserved([]string{empty})
	})
	if err != nil {
		t.Fatalf("runReserved() error = %v", err)
	}
	if output != "[]\n" {
		t.Errorf("expected empty JSON list, got %q", output)
	}
}

func TestSysinfoCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runSysinfo([]string{sampleDTB(t)})
	})
	if err != nil {
		t.Fatalf("runSysinfo() error = %v", err)
	}
	assertContains(t, output, []string{
		"Model:       dtbkit,virt\n",
		"Compatible:  dtbkit,virt, dtbkit,board\n",
		"Stdout path: /pl011@9000000\n",
		"RAM base:    0x40000000\n",
		"RAM size:    0x8000000 (128 MiB)\n",
	})
	assertNotContains(t, output, []string{"Banks:"})

	resetFlags()
	yamlOut = true
	output, err = captureOutput(t, func() error {
		return runSysinfo([]string{sampleDTB(t)})
	})
	if err != nil {
		t.Fatalf("runSysinfo() error = %v", err)
	}
	assertYAML(t, output)
	assertContains(t, output, []string{"ram_base: 1073741824", "model: dtbkit,virt"})
}

func TestStatsCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runStats([]string{sampleDTB(t)})
	})
	if err != nil {
		t.Fatalf("runStats() error = %v", err)
	}
	assertContains(t, output, []string{"Nodes:       7\n", "Properties:  16\n", "Stop:        end\n"})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runStats([]string{sampleDTB(t)})
	})
	if err != nil {
		t.Fatalf("runStats() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{"\"nodes\": 7"})
}

func TestValidateCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		return runValidate([]string{sampleDTB(t)})
	})
	if err != nil {
		t.Fatalf("runValidate() error = %v", err)
	}
	assertContains(t, output, []string{"is valid"})

	resetFlags()
	bad := testutil.WriteBlob(t, "open.dtb", testutil.NewBuilder().BeginNode("").End().Bytes())
	output, err = captureOutput(t, func() error {
		return runValidate([]string{bad})
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertContains(t, err.Error(), []string{"1 issue(s) found"})
	assertContains(t, output, []string{"✗ ", "still open"})

	resetFlags()
	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runValidate([]string{bad})
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertJSON(t, output)
}

func TestVersionCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		versionCmd.Run(versionCmd, nil)
		return nil
	})
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	assertContains(t, output, []string{"dtbctl dev\n", "commit: none"})

	if rootCmd.Version != version {
		t.Errorf("rootCmd.Version = %q, want %q", rootCmd.Version, version)
	}
}

func TestDumpFlagsBoundToConfig(t *testing.T) {
	resetFlags()
	cmd, _, err := rootCmd.Find([]string{"dump"})
	if err != nil {
		t.Fatalf("find dump: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Flags().Set("max-bytes", "0")
		resetFlags()
	})

	if err := cmd.Flags().Set("max-bytes", "3"); err != nil {
		t.Fatalf("set max-bytes: %v", err)
	}
	if got := viper.GetInt("max-bytes"); got != 3 {
		t.Errorf("viper max-bytes = %d, want 3", got)
	}
}
