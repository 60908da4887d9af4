package formats

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/formats/asciixy"
	"github.com/custodia-labs/xyspec-cli/internal/sampleid"
)

// registryMockReader is a simple mock for testing registry functionality.
type registryMockReader struct {
	format string
}

func (m *registryMockReader) Format() string            { return m.format }
func (m *registryMockReader) BinaryMode(_ string) bool { return true }
func (m *registryMockReader) Read(_ io.Reader, _ string) ([]domain.Spectrum, error) {
	return nil, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.formats) != 0 {
		t.Errorf("expected empty formats, got %d", len(r.formats))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register(Format{Name: "test"})

	if !r.Has("test") {
		t.Error("expected 'test' to be registered")
	}
	if r.Has("other") {
		t.Error("expected 'other' not to be registered")
	}
}

func TestRegistry_NewReader_PassesConfig(t *testing.T) {
	r := NewRegistry()

	var gotCfg map[string]any
	r.Register(Format{
		Name: "test",
		NewReader: func(_ driven.SampleIDExtractor, cfg map[string]any) (driven.SpectrumReader, error) {
			gotCfg = cfg
			return &registryMockReader{format: "test"}, nil
		},
	})

	reader, err := r.NewReader("test", nil, map[string]any{"separator": ","})
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if reader.Format() != "test" {
		t.Errorf("expected format 'test', got %q", reader.Format())
	}
	if gotCfg["separator"] != "," {
		t.Errorf("expected config to reach builder, got %v", gotCfg)
	}
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewRegistry()

	if _, err := r.NewReader("unknown", nil, nil); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType from NewReader, got %v", err)
	}
	if _, err := r.NewWriter("unknown", nil); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType from NewWriter, got %v", err)
	}
}

func TestRegistry_ReadOnlyFormat(t *testing.T) {
	r := NewRegistry()
	r.Register(Format{
		Name: "readonly",
		NewReader: func(_ driven.SampleIDExtractor, _ map[string]any) (driven.SpectrumReader, error) {
			return &registryMockReader{format: "readonly"}, nil
		},
	})

	reader, err := r.NewReader("readonly", nil, nil)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if _, err := r.WriterFor(reader, nil); !errors.Is(err, domain.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType for missing writer, got %v", err)
	}
}

func TestRegistry_Names_Sorted(t *testing.T) {
	r := NewRegistry()
	r.Register(Format{Name: "zeta"})
	r.Register(Format{Name: "alpha"})
	r.Register(Format{Name: "mid"})

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestRegistry_ForPath(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"spectrum.txt", asciixy.FormatName, false},
		{"/data/SPECTRUM.XY", asciixy.FormatName, false},
		{"spectrum.spa", "", true},
		{"spectrum", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := r.ForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnsupportedType) {
					t.Errorf("expected ErrUnsupportedType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDefaults_ASCIIXYCounterparts(t *testing.T) {
	r := NewDefaultRegistry()

	reader, err := r.NewReader(asciixy.FormatName, sampleid.NewFilename(), map[string]any{"separator": "\t"})
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if reader.BinaryMode("x.txt") {
		t.Error("expected text mode reader")
	}

	writer, err := r.WriterFor(reader, map[string]any{"separator": ","})
	if err != nil {
		t.Fatalf("WriterFor failed: %v", err)
	}
	if writer.Format() != reader.Format() {
		t.Errorf("expected paired formats, got %q and %q", reader.Format(), writer.Format())
	}

	back, err := r.ReaderFor(writer, sampleid.NewFilename(), nil)
	if err != nil {
		t.Fatalf("ReaderFor failed: %v", err)
	}
	if back.Format() != asciixy.FormatName {
		t.Errorf("expected %q, got %q", asciixy.FormatName, back.Format())
	}
}

func TestDefaults_SeparatorsAreIndependent(t *testing.T) {
	r := NewDefaultRegistry()

	reader, err := r.NewReader(asciixy.FormatName, sampleid.NewFilename(), map[string]any{"separator": "\t"})
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	writer, err := r.NewWriter(asciixy.FormatName, nil)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	spectra, err := reader.Read(strings.NewReader("1\t2\n3\t4\n"), "/tmp/abc.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if spectra[0].ID != "abc" {
		t.Errorf("expected sample id 'abc', got %q", spectra[0].ID)
	}

	var buf strings.Builder
	if err := writer.Write(spectra, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "3.0;4.0\n1.0;2.0\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestDefaults_NonStringSeparatorIgnored(t *testing.T) {
	r := NewDefaultRegistry()

	writer, err := r.NewWriter(asciixy.FormatName, map[string]any{"separator": 42})
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if w, ok := writer.(*asciixy.Writer); !ok || w.Separator() != ";" {
		t.Errorf("expected default separator, got %#v", writer)
	}
}

func TestRegistry_Formats(t *testing.T) {
	infos := NewDefaultRegistry().Formats()
	if len(infos) != 1 {
		t.Fatalf("expected 1 format, got %d", len(infos))
	}
	if infos[0].Name != asciixy.FormatName || infos[0].Binary {
		t.Errorf("unexpected format info: %+v", infos[0])
	}
	for _, opts := range [][]string{infos[0].ReaderOptions, infos[0].WriterOptions} {
		if len(opts) != 1 || opts[0] != "separator" {
			t.Errorf("expected only the separator option, got %v", opts)
		}
	}
}
